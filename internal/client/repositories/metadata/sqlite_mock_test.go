package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestGet_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("database is locked")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).WithArgs("user").WillReturnError(boom)

	_, err = NewSQLiteRepository(db).Get(context.Background(), "user")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to get metadata[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("disk full")
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs("user", []byte("x")).WillReturnError(boom)

	err = NewSQLiteRepository(db).Set(context.Background(), "user", []byte("x"))
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("disk I/O error")
	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(boom)

	err = NewSQLiteRepository(db).Clear(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to clear metadata")
	require.NoError(t, mock.ExpectationsWereMet())
}
