package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestRegistration_NoPattern_NoCall(t *testing.T) {
	fc := &fakeClient{}
	f := NewRegistrationFlow(fc, nil)

	scr, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	require.Equal(t, ScreenNone, scr)
	requireStepError(t, err, KindValidation, "Please draw your security pattern.")
	require.ErrorIs(t, err, ErrPatternRequired)
	require.Zero(t, fc.count("register"))
	require.Equal(t, "Please draw your security pattern.", f.ErrorMessage())
	require.Equal(t, RegistrationEditing, f.State())
}

func TestRegistration_ClearedPattern_NoCall(t *testing.T) {
	fc := &fakeClient{}
	f := NewRegistrationFlow(fc, nil)

	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})
	f.OnPatternChanged(capture.PatternChanged{Pattern: capture.NoPattern})

	_, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	requireStepError(t, err, KindValidation, "Please draw your security pattern.")
	require.Zero(t, fc.count("register"))
}

func TestRegistration_Success(t *testing.T) {
	fc := &fakeClient{RegisterRet: client.Success(models.Ack{Message: "ok"})}
	f := NewRegistrationFlow(fc, nil)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	scr, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, ScreenLogin, scr)
	require.Equal(t, RegistrationDone, f.State())
	require.Equal(t, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Pattern: patternA}, fc.LastRegister)

	_, err = f.Submit(context.Background(), "Ann", "ann@example.com")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, 1, fc.count("register"))
}

func TestRegistration_LatestPatternWins(t *testing.T) {
	fc := &fakeClient{}
	f := NewRegistrationFlow(fc, nil)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternB})

	_, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, patternB, fc.LastRegister.Pattern)
}

func TestRegistration_Rejected_VerbatimMessage(t *testing.T) {
	fc := &fakeClient{RegisterRet: client.Failure[models.Ack]("Email already registered")}
	f := NewRegistrationFlow(fc, nil)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	scr, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	require.Equal(t, ScreenNone, scr)
	requireStepError(t, err, KindRejected, "Email already registered")
	require.ErrorIs(t, err, ErrRejected)
	require.Equal(t, RegistrationEditing, f.State())

	// retry after fixing the input succeeds
	fc.RegisterRet = client.Success(models.Ack{})
	scr, err = f.Submit(context.Background(), "Ann", "ann2@example.com")
	require.NoError(t, err)
	require.Equal(t, ScreenLogin, scr)
	require.Empty(t, f.ErrorMessage())
}

func TestRegistration_Transport_FixedMessage(t *testing.T) {
	fc := &fakeClient{RegisterErr: errors.Join(client.ErrUnavailable, errors.New("dial tcp: refused"))}
	f := NewRegistrationFlow(fc, nil)
	f.OnPatternChanged(capture.PatternChanged{Pattern: patternA})

	_, err := f.Submit(context.Background(), "Ann", "ann@example.com")
	requireStepError(t, err, KindTransport, "Registration failed. Please try again.")
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.Equal(t, RegistrationEditing, f.State())
}
