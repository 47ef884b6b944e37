package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestSessionService_SetGetClear(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	want := models.Session{User: ann, Token: "tok-1"}
	require.NoError(t, s.Set(ctx, want))

	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 2, countMeta(t, s.db))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, countMeta(t, s.db))
}

func TestSessionService_SetReplacesAndDropsEmptyToken(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)

	require.NoError(t, s.Set(ctx, models.Session{User: ann, Token: "tok-1"}))

	bob := models.User{ID: 8, Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, s.Set(ctx, models.Session{User: bob}))

	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, models.Session{User: bob}, got)
	require.Equal(t, 1, countMeta(t, s.db))
}

func TestEnter(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)

	u, scr, err := Enter(ctx, s)
	require.NoError(t, err)
	require.Equal(t, ScreenLogin, scr)
	require.Zero(t, u)

	require.NoError(t, s.Set(ctx, models.Session{User: ann, Token: "tok-1"}))
	u, scr, err = Enter(ctx, s)
	require.NoError(t, err)
	require.Equal(t, ScreenWelcome, scr)
	require.Equal(t, ann, u)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)
	require.NoError(t, s.Set(ctx, models.Session{User: ann, Token: "tok-1"}))

	scr, err := Logout(ctx, s)
	require.NoError(t, err)
	require.Equal(t, ScreenLogin, scr)

	_, scr, err = Enter(ctx, s)
	require.NoError(t, err)
	require.Equal(t, ScreenLogin, scr)
}

// Session State written by a login survives into a fresh service over the
// same database.
func TestLoginFlow_WithSQLiteSession(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)
	fc := &fakeClient{VerifyRet: verified()}

	f := awaitingPattern(t, fc, s)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})
	_, err := f.SubmitPattern(ctx)
	require.NoError(t, err)

	again := NewSessionService(s.db, nil)
	u, scr, err := Enter(ctx, again)
	require.NoError(t, err)
	require.Equal(t, ScreenWelcome, scr)
	require.Equal(t, ann, u)
}

func TestSessionService_ClearEmptiesMetadata(t *testing.T) {
	ctx := context.Background()
	s := setupSessions(t)

	require.NoError(t, s.Set(ctx, models.Session{User: ann, Token: "tok-1"}))
	_, err := s.db.Exec(`INSERT INTO metadata(key, value) VALUES ('leftover', x'01')`)
	require.NoError(t, err)
	require.Equal(t, 3, countMeta(t, s.db))

	require.NoError(t, s.Clear(ctx))
	require.Zero(t, countMeta(t, s.db))
}
