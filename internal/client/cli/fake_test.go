package cli

import (
	"bufio"
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/config"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

const scriptBody = "150 150\nstroke 10,10 40,40 80,20\nstroke 20,120 130,120\n"

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern.txt")
	require.NoError(t, os.WriteFile(path, []byte(scriptBody), 0o600))
	return path
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

type testApp struct {
	*App
	out      *bytes.Buffer
	sessions *services.SessionService
}

func newTestApp(t *testing.T, api client.Client, input string) *testApp {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	sessions := services.NewSessionService(db, nil)
	out := &bytes.Buffer{}
	a := newApp(cfg, nil, api, sessions, bufio.NewReader(strings.NewReader(input)), out)
	a.rng = rand.New(rand.NewPCG(1, 2))

	return &testApp{App: a, out: out, sessions: sessions}
}

// ------------ fake API ------------

// fakeAPI implements client.Client. Zero results mean success.
type fakeAPI struct {
	mu sync.Mutex

	registerRes  client.Result[models.Ack]
	challengeRes client.Result[models.Ack]
	verifyRes    client.Result[models.VerifyResponse]
	verifySeq    []client.Result[models.VerifyResponse] // consumed first, then verifyRes
	forgotRes    client.Result[models.Ack]
	resetRes     []client.Result[models.Ack] // consumed in order; the last one repeats
	scoreRes     client.Result[models.Ack]
	err          error

	registers  []models.RegisterRequest
	challenges []models.LoginChallengeRequest
	verifies   []models.VerifyRequest
	forgots    []models.ForgotPatternRequest
	resets     []models.ResetPatternRequest
	scores     []models.ScoreRequest
	tokens     []string
}

func (f *fakeAPI) Register(_ context.Context, req models.RegisterRequest) (client.Result[models.Ack], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, req)
	return f.registerRes, f.err
}

func (f *fakeAPI) LoginChallenge(_ context.Context, req models.LoginChallengeRequest) (client.Result[models.Ack], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges = append(f.challenges, req)
	return f.challengeRes, f.err
}

func (f *fakeAPI) Verify(_ context.Context, req models.VerifyRequest) (client.Result[models.VerifyResponse], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies = append(f.verifies, req)
	if len(f.verifySeq) > 0 {
		res := f.verifySeq[0]
		f.verifySeq = f.verifySeq[1:]
		return res, f.err
	}
	return f.verifyRes, f.err
}

func (f *fakeAPI) ForgotPattern(_ context.Context, req models.ForgotPatternRequest) (client.Result[models.Ack], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgots = append(f.forgots, req)
	return f.forgotRes, f.err
}

func (f *fakeAPI) ResetPattern(_ context.Context, req models.ResetPatternRequest) (client.Result[models.Ack], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, req)
	var res client.Result[models.Ack]
	if len(f.resetRes) > 0 {
		res = f.resetRes[0]
		if len(f.resetRes) > 1 {
			f.resetRes = f.resetRes[1:]
		}
	}
	return res, f.err
}

func (f *fakeAPI) SubmitScore(_ context.Context, token string, req models.ScoreRequest) (client.Result[models.Ack], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.scores = append(f.scores, req)
	return f.scoreRes, f.err
}
