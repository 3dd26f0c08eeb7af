package config

type Config interface {
	EnvConfig
	ProviderConfig
	PolicyConfig
}

type mainConfig struct {
	EnvVars
	Provider
	Policy
}

func New() Config {
	return mainConfig{}
}
