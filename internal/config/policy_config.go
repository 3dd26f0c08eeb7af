package config

import "time"

type PolicyConfig interface {
	GetTokenTTL() time.Duration
	GetRefreshMargin() time.Duration
	GetSessionExpiry() time.Duration
	GetExchangeTimeout() time.Duration
}

type Policy struct{}

var _ PolicyConfig = Policy{}

// GetTokenTTL is the policy window after which issued tokens are considered
// expired. It deliberately ignores any provider-declared expires_in value.
func (Policy) GetTokenTTL() time.Duration {
	return 1 * time.Hour
}

// GetRefreshMargin is the safety window before expiry during which a
// proactive refresh is attempted.
func (Policy) GetRefreshMargin() time.Duration {
	return 5 * time.Minute
}

func (Policy) GetSessionExpiry() time.Duration {
	return 30 * 24 * time.Hour // 30 days
}

func (Policy) GetExchangeTimeout() time.Duration {
	return 10 * time.Second
}
