package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKeyReturnsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestSetGet_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, r.Set(ctx, KeyRefreshToken, "R1"))

	v, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T1", v)
}

func TestSet_OverwritesExisting(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, r.Set(ctx, KeyAccessToken, "T2"))

	v, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T2", v)
}

func TestSetPair_WritesBothKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetPair(ctx, "T1", "R1"))

	access, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T1", access)

	refresh, err := r.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "R1", refresh)
}

func TestSetPair_OverwritesExistingPair(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetPair(ctx, "T1", "R1"))
	require.NoError(t, r.SetPair(ctx, "T2", "R2"))

	access, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T2", access)

	refresh, err := r.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "R2", refresh)
}

func TestSetPair_FailureLeavesNothingBehind(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// Reject the refresh-token write so only the access token would land.
	_, err := db.Exec(`
CREATE TRIGGER reject_refresh BEFORE INSERT ON credentials
WHEN NEW.key = 'refresh_token'
BEGIN SELECT RAISE(ABORT, 'rejected'); END
`)
	require.NoError(t, err)

	require.Error(t, r.SetPair(ctx, "T1", "R1"))

	access, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Empty(t, access, "partial pair must roll back")
}

func TestClear_RemovesEverything(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, r.Set(ctx, KeyRefreshToken, "R1"))
	require.NoError(t, r.Clear(ctx))

	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.Empty(t, v)
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, r.Delete(ctx, KeyAccessToken))
	require.NoError(t, r.Delete(ctx, KeyAccessToken))
}
