package sessions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
	"github.com/tidyplan/todo-gateway/sessions"
)

func testRecord() *sessions.Record {
	return &sessions.Record{
		ID:               "session-1",
		Subject:          "u1",
		Email:            "john.doe@example.com",
		AccessToken:      "A1",
		IdentityToken:    "I1",
		RefreshToken:     "R1",
		IssuedAt:         1_700_000_000,
		ExpiresAt:        1_700_003_600,
		CreatedAt:        time.Unix(1_700_000_000, 0),
		SessionExpiresAt: time.Unix(1_702_592_000, 0),
	}
}

func TestUpsertAndGet(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	record := testRecord()

	require.NoError(t, repo.Upsert(record.ID, record))

	got, err := repo.Get(record.ID)
	require.NoError(t, err)
	require.Equal(t, record, got)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	record := testRecord()
	require.NoError(t, repo.Upsert(record.ID, record))

	got, err := repo.Get(record.ID)
	require.NoError(t, err)
	got.AccessToken = "tampered"

	again, err := repo.Get(record.ID)
	require.NoError(t, err)
	require.Equal(t, "A1", again.AccessToken, "stored state must not change through handed-out copies")
}

func TestUpsertStoresCopy(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	record := testRecord()
	require.NoError(t, repo.Upsert(record.ID, record))

	record.AccessToken = "mutated-later"

	got, err := repo.Get(record.ID)
	require.NoError(t, err)
	require.Equal(t, "A1", got.AccessToken)
}

func TestGetMissing(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	_, err := repo.Get("nope")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	record := testRecord()
	require.NoError(t, repo.Upsert(record.ID, record))

	require.NoError(t, repo.Delete(record.ID))

	_, err := repo.Get(record.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestEmptyIDRejected(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	require.Error(t, repo.Upsert("", testRecord()))
	require.Error(t, repo.Delete(""))
	_, err := repo.Get("")
	require.Error(t, err)
}
