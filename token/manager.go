// Package token implements the token lifecycle manager: it decides when a
// session's credentials need refreshing, performs the refresh through the
// provider exchange client, and applies the update rule to the session
// record. All record mutation in the system funnels through this package.
package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tidyplan/todo-gateway/claims"
	"github.com/tidyplan/todo-gateway/internal/config"
	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
	"github.com/tidyplan/todo-gateway/provider"
	"github.com/tidyplan/todo-gateway/sessions"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Exchanger performs the refresh-token exchange against the provider.
// Satisfied by *provider.Client.
type Exchanger interface {
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*provider.TokenBundle, error)
}

// Manager owns the mutation path of session records. Refreshes for the same
// record are serialized through a per-session lock so that an in-flight
// refresh always completes before another one starts.
type Manager struct {
	exchanger     Exchanger
	repo          sessions.Repo
	tokenTTL      time.Duration
	refreshMargin time.Duration
	sessionExpiry time.Duration

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewManager creates a new token lifecycle manager
func NewManager(exchanger Exchanger, repo sessions.Repo, cfg config.PolicyConfig) *Manager {
	return &Manager{
		exchanger:     exchanger,
		repo:          repo,
		tokenTTL:      cfg.GetTokenTTL(),
		refreshMargin: cfg.GetRefreshMargin(),
		sessionExpiry: cfg.GetSessionExpiry(),
		locks:         make(map[string]*sync.Mutex),
	}
}

// IsNearExpiry reports whether tokens issued at issuedAt are within margin of
// the policy expiry window. Pure function, no I/O.
func IsNearExpiry(issuedAt int64, ttl, margin time.Duration) bool {
	return issuedAt+int64(ttl/time.Second) <= NowTimeFunc().Unix()+int64(margin/time.Second)
}

// NewRecord builds and stores a session record from the bundle returned by
// the authorization-code exchange.
func (m *Manager) NewRecord(bundle *provider.TokenBundle) (*sessions.Record, error) {
	now := NowTimeFunc()
	record := &sessions.Record{
		ID:               uuid.NewString(),
		CreatedAt:        now,
		SessionExpiresAt: now.Add(m.sessionExpiry),
	}
	if err := m.applyBundle(record, bundle); err != nil {
		return nil, apperrors.Wrapf(err, "apply initial token bundle")
	}
	if err := m.repo.Upsert(record.ID, record); err != nil {
		return nil, apperrors.Wrapf(err, "store session record")
	}
	return record, nil
}

// EnsureValid proactively refreshes the record when its tokens are near
// expiry. Failures are soft: the record is left unchanged and the caller
// proceeds with the stale credential, falling back to the reactive 401 path.
func (m *Manager) EnsureValid(ctx context.Context, record *sessions.Record) {
	if !IsNearExpiry(record.IssuedAt, m.tokenTTL, m.refreshMargin) {
		return
	}
	if _, err := m.refresh(ctx, record); err != nil {
		log.Warn().Err(err).Str("session_id", record.ID).Msg("Proactive refresh failed, continuing with stale token")
	}
}

// ForceRefresh refreshes regardless of expiry state and reports whether new
// token material is in place, either from our own exchange or adopted from a
// refresh that completed while we waited on the record's lock.
func (m *Manager) ForceRefresh(ctx context.Context, record *sessions.Record) bool {
	changed, err := m.refresh(ctx, record)
	if err != nil {
		log.Warn().Err(err).Str("session_id", record.ID).Msg("Forced refresh failed")
		return false
	}
	return changed
}

// Revoke destroys the session record.
func (m *Manager) Revoke(record *sessions.Record) error {
	err := m.repo.Delete(record.ID)
	m.locksMu.Lock()
	delete(m.locks, record.ID)
	m.locksMu.Unlock()
	return err
}

// refresh serializes on the per-record lock, then either adopts token
// material a concurrent refresh already produced or performs the exchange
// itself. Returns whether new material is in place. A successful exchange
// always counts, even when it lands in the same wall-clock second as the
// prior issuance and leaves IssuedAt numerically unchanged.
func (m *Manager) refresh(ctx context.Context, record *sessions.Record) (bool, error) {
	lock := m.lockFor(record.ID)
	lock.Lock()
	defer lock.Unlock()

	// Another request may have refreshed this session while we waited on the
	// lock. Adopt its result rather than spending our possibly-stale refresh
	// token on a second exchange.
	if stored, err := m.repo.Get(record.ID); err == nil && stored.IssuedAt > record.IssuedAt {
		*record = *stored
		return true, nil
	}

	bundle, err := m.exchanger.ExchangeRefreshToken(ctx, record.RefreshToken)
	if err != nil {
		return false, err
	}
	if err := m.applyBundle(record, bundle); err != nil {
		return false, err
	}
	if err := m.repo.Upsert(record.ID, record); err != nil {
		return false, apperrors.Wrapf(err, "store refreshed record")
	}
	return true, nil
}

// applyBundle applies the update rule to the record in place. All failure
// paths happen before the first field is written, so a failed update leaves
// the record untouched.
//
// Identity fields are refreshed from the new ID token so provider-side
// profile changes propagate on every refresh, while a missing claim never
// erases previously known data.
func (m *Manager) applyBundle(record *sessions.Record, bundle *provider.TokenBundle) error {
	claimSet, err := claims.Decode(bundle.IdentityToken)
	if err != nil {
		return apperrors.Wrapf(err, "decode identity token")
	}

	now := NowTimeFunc().Unix()
	record.AccessToken = bundle.AccessToken
	record.IdentityToken = bundle.IdentityToken
	if bundle.RefreshToken != "" {
		record.RefreshToken = bundle.RefreshToken
	}
	record.IssuedAt = now
	// Fixed policy window past issuance. The provider-declared expires_in is
	// deliberately ignored here.
	record.ExpiresAt = now + int64(m.tokenTTL/time.Second)

	if claimSet.Subject != "" {
		record.Subject = claimSet.Subject
	}
	if claimSet.Email != "" {
		record.Email = claimSet.Email
	}
	if name, ok := claimSet.DisplayName(); ok {
		record.DisplayName = name
	}
	return nil
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}
