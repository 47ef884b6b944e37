package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

const (
	patternA capture.Pattern = "data:image/png;base64,AAAA"
	patternB capture.Pattern = "data:image/png;base64,BBBB"
)

func setupSessions(t *testing.T) *SessionService {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionService(db, nil)
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

// ---- fake client ----

// fakeClient реализует client.Client. Нулевые значения *Ret дают успех.
type fakeClient struct {
	mu sync.Mutex

	RegisterRet client.Result[models.Ack]
	RegisterErr error

	ChallengeRet client.Result[models.Ack]
	ChallengeErr error

	VerifyRet client.Result[models.VerifyResponse]
	VerifyErr error

	ForgotRet client.Result[models.Ack]
	ForgotErr error

	ResetRet client.Result[models.Ack]
	ResetErr error

	ScoreRet client.Result[models.Ack]
	ScoreErr error

	// Gate, when set, blocks every call until it is closed.
	Gate    chan struct{}
	Entered chan struct{}

	LastRegister  models.RegisterRequest
	LastChallenge models.LoginChallengeRequest
	LastVerify    models.VerifyRequest
	LastForgot    models.ForgotPatternRequest
	LastReset     models.ResetPatternRequest
	LastScore     models.ScoreRequest
	LastToken     string

	Calls map[string]int
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[name]++
	entered, gate := f.Entered, f.Gate
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (client.Result[models.Ack], error) {
	f.record("register")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) LoginChallenge(ctx context.Context, req models.LoginChallengeRequest) (client.Result[models.Ack], error) {
	f.record("login-challenge")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastChallenge = req
	return f.ChallengeRet, f.ChallengeErr
}

func (f *fakeClient) Verify(ctx context.Context, req models.VerifyRequest) (client.Result[models.VerifyResponse], error) {
	f.record("verify")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastVerify = req
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) ForgotPattern(ctx context.Context, req models.ForgotPatternRequest) (client.Result[models.Ack], error) {
	f.record("forgot-pattern")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastForgot = req
	return f.ForgotRet, f.ForgotErr
}

func (f *fakeClient) ResetPattern(ctx context.Context, req models.ResetPatternRequest) (client.Result[models.Ack], error) {
	f.record("reset-pattern")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastReset = req
	return f.ResetRet, f.ResetErr
}

func (f *fakeClient) SubmitScore(ctx context.Context, token string, req models.ScoreRequest) (client.Result[models.Ack], error) {
	f.record("scores")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastScore = req
	return f.ScoreRet, f.ScoreErr
}

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	mu     sync.Mutex
	sess   models.Session
	ok     bool
	SetErr error
	GetErr error
	SetN   int
}

func (s *fakeSessions) Set(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetN++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.sess, s.ok = sess, true
	return nil
}

func (s *fakeSessions) Get(ctx context.Context) (models.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, s.ok, s.GetErr
}

func (s *fakeSessions) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess, s.ok = models.Session{}, false
	return nil
}

func requireStepError(t *testing.T, err error, kind FailureKind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *StepError
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind)
	require.Equal(t, msg, se.Message)
}
