package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T, schema string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

const strictSchema = `CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`

func TestSetGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, strictSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user", []byte(`{"name":"Jane","email":"jane@x.com"}`)))

	v, err := r.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jane","email":"jane@x.com"}`, string(v))
}

func TestGet_MissingIsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, strictSchema))

	v, err := r.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, strictSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("old")))
	require.NoError(t, r.Set(ctx, "token", []byte("new")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, strictSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user", []byte{1}))
	require.NoError(t, r.Delete(ctx, "user"))
	require.NoError(t, r.Delete(ctx, "user"))

	v, err := r.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, strictSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user", []byte{1}))
	require.NoError(t, r.Set(ctx, "token", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	for _, k := range []string{"user", "token"} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
}

func TestInsideTransaction(t *testing.T) {
	db := setupDB(t, strictSchema)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Set(ctx, "user", []byte("x"))
	})
	require.NoError(t, err)

	v, err := NewSQLiteRepository(db).Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), v)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t, strictSchema)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata[k]")

	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear metadata")
}

func TestGet_NullValue(t *testing.T) {
	db := setupDB(t, `CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB);`)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('user', NULL);`)
	require.NoError(t, err)

	v, err := r.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, v)
}
