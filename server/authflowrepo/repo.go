package authflowrepo

import "time"

// AuthFlowState tracks one in-flight authorization redirect, keyed by the
// opaque state parameter sent to the provider.
type AuthFlowState struct {
	ReturnURL string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
}
