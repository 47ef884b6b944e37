package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

var ann = models.User{ID: 7, Name: "Ann", Email: "ann@example.com"}

func verified() client.Result[models.VerifyResponse] {
	return client.Success(models.VerifyResponse{
		Message:         "Authentication successful!",
		Token:           "tok-1",
		User:            ann,
		MatchPercentage: 97.5,
	})
}

func awaitingPattern(t *testing.T, fc *fakeClient, sessions SessionStore) *LoginFlow {
	t.Helper()
	f := NewLoginFlow(fc, sessions, nil)
	require.NoError(t, f.SubmitEmail(context.Background(), ann.Email))
	require.Equal(t, LoginAwaitingPattern, f.Step())
	return f
}

func TestLogin_LookupRejected_StaysAtEmail(t *testing.T) {
	fc := &fakeClient{ChallengeRet: client.Failure[models.Ack]("User not found")}
	f := NewLoginFlow(fc, &fakeSessions{}, nil)

	err := f.SubmitEmail(context.Background(), "nobody@example.com")
	requireStepError(t, err, KindRejected, "User not found")
	require.Equal(t, LoginEmailEntered, f.Step())
	require.Equal(t, "User not found", f.ErrorMessage())
	require.Zero(t, fc.count("verify"))
}

func TestLogin_LookupTransport(t *testing.T) {
	fc := &fakeClient{ChallengeErr: client.ErrUnavailable}
	f := NewLoginFlow(fc, &fakeSessions{}, nil)

	err := f.SubmitEmail(context.Background(), ann.Email)
	requireStepError(t, err, KindTransport, "Failed to find user. Please check email.")
	require.Equal(t, LoginEmailEntered, f.Step())
}

func TestLogin_PatternBeforeLookup_Ignored(t *testing.T) {
	fc := &fakeClient{}
	f := NewLoginFlow(fc, &fakeSessions{}, nil)

	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})
	require.False(t, f.Pattern().Present())

	_, err := f.SubmitPattern(context.Background())
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Zero(t, fc.count("verify"))
}

func TestLogin_NoPattern_NoCall(t *testing.T) {
	fc := &fakeClient{}
	f := awaitingPattern(t, fc, &fakeSessions{})

	_, err := f.SubmitPattern(context.Background())
	requireStepError(t, err, KindValidation, "Please draw the pattern.")
	require.Zero(t, fc.count("verify"))
	require.Equal(t, LoginAwaitingPattern, f.Step())
}

func TestLogin_Success_WritesSession(t *testing.T) {
	fc := &fakeClient{VerifyRet: verified()}
	sessions := &fakeSessions{}
	f := awaitingPattern(t, fc, sessions)

	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})
	scr, err := f.SubmitPattern(context.Background())
	require.NoError(t, err)
	require.Equal(t, ScreenWelcome, scr)
	require.Equal(t, LoginAuthenticated, f.Step())
	require.Equal(t, models.VerifyRequest{Email: ann.Email, Pattern: patternA}, fc.LastVerify)

	sess, ok, err := sessions.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, models.Session{User: ann, Token: "tok-1"}, sess)

	u, ok := f.User()
	require.True(t, ok)
	require.Equal(t, ann, u)
}

func TestLogin_Rejected_NoSession_Retry(t *testing.T) {
	fc := &fakeClient{VerifyRet: client.Failure[models.VerifyResponse]("Authentication failed.")}
	sessions := &fakeSessions{}
	f := awaitingPattern(t, fc, sessions)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	_, err := f.SubmitPattern(context.Background())
	requireStepError(t, err, KindRejected, "Authentication failed.")
	require.Equal(t, LoginAwaitingPattern, f.Step())
	require.Zero(t, sessions.SetN)

	fc.VerifyRet = verified()
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternB})
	scr, err := f.SubmitPattern(context.Background())
	require.NoError(t, err)
	require.Equal(t, ScreenWelcome, scr)
	require.Equal(t, patternB, fc.LastVerify.Pattern)
}

func TestLogin_VerifyTransport(t *testing.T) {
	fc := &fakeClient{VerifyErr: client.ErrUnavailable}
	sessions := &fakeSessions{}
	f := awaitingPattern(t, fc, sessions)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	_, err := f.SubmitPattern(context.Background())
	requireStepError(t, err, KindTransport, "Verification failed.")
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.Zero(t, sessions.SetN)
}

func TestLogin_SessionWriteFails(t *testing.T) {
	fc := &fakeClient{VerifyRet: verified()}
	sessions := &fakeSessions{SetErr: errors.New("disk full")}
	f := awaitingPattern(t, fc, sessions)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	_, err := f.SubmitPattern(context.Background())
	requireStepError(t, err, KindTransport, "Verification failed.")
	require.Equal(t, LoginAwaitingPattern, f.Step())
}

func TestLogin_Back_DiscardsPatternKeepsEmail(t *testing.T) {
	fc := &fakeClient{}
	f := awaitingPattern(t, fc, &fakeSessions{})
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	require.NoError(t, f.Back())
	require.Equal(t, LoginEmailEntered, f.Step())
	require.Equal(t, ann.Email, f.Email())
	require.False(t, f.Pattern().Present())

	require.ErrorIs(t, f.Back(), ErrInvalidTransition)

	// re-entering step two starts with an empty pad
	require.NoError(t, f.SubmitEmail(context.Background(), ann.Email))
	_, err := f.SubmitPattern(context.Background())
	requireStepError(t, err, KindValidation, "Please draw the pattern.")
}

func TestLogin_ConcurrentSubmits_BothReachCollaborator(t *testing.T) {
	fc := &fakeClient{VerifyRet: verified()}
	sessions := &fakeSessions{}
	f := awaitingPattern(t, fc, sessions)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	fc.mu.Lock()
	fc.Gate = make(chan struct{})
	fc.Entered = make(chan struct{}, 2)
	fc.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.SubmitPattern(context.Background())
		}(i)
	}

	<-fc.Entered
	<-fc.Entered
	close(fc.Gate)
	wg.Wait()

	require.Equal(t, 2, fc.count("verify"))
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, LoginAuthenticated, f.Step())
}

func TestLogin_BackDuringVerify_DiscardsAnswer(t *testing.T) {
	fc := &fakeClient{VerifyRet: verified()}
	sessions := &fakeSessions{}
	f := awaitingPattern(t, fc, sessions)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	fc.mu.Lock()
	fc.Gate = make(chan struct{})
	fc.Entered = make(chan struct{}, 1)
	fc.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitPattern(context.Background())
		done <- err
	}()

	<-fc.Entered
	require.NoError(t, f.Back())
	close(fc.Gate)

	require.ErrorIs(t, <-done, ErrInvalidTransition)
	require.Equal(t, LoginEmailEntered, f.Step())
	_, ok := f.User()
	require.False(t, ok)

	_, stored, err := sessions.Get(context.Background())
	require.NoError(t, err)
	require.False(t, stored, "stale verification must not write Session State")
	require.Equal(t, 0, sessions.SetN)
}
