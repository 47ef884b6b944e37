package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/config"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/client/services"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	api      client.Client
	sessions services.SessionStore
	scores   *services.ScoreService
	reader   *bufio.Reader
	out      io.Writer
	rng      *rand.Rand

	screen services.Screen
	user   models.User
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	sessions := services.NewSessionService(db, logger)

	a := newApp(c, logger, api, sessions, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, api client.Client, sessions services.SessionStore, r *bufio.Reader, w io.Writer) *App {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &App{
		config:   c,
		logger:   logger,
		api:      api,
		sessions: sessions,
		scores:   services.NewScoreService(api, sessions, logger),
		reader:   r,
		out:      w,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		screen:   services.ScreenLogin,
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to gatekeeper (type 'help' for commands)")
	_ = a.Welcome(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "error closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user.Email != ""
}

func (a *App) getStatus() string {
	s := string(a.screen)
	if a.isLoggedIn() {
		s = a.user.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) newSurface(l capture.Listener) *capture.Surface {
	return capture.NewSurface(capture.Options{
		Size:        a.config.CanonicalSize,
		StrokeWidth: a.config.StrokeWidth,
	}, l)
}

// report shows a step failure to the user. StepError messages are already
// user-facing; anything else is logged and shown as is.
func (a *App) report(ctx context.Context, err error) {
	var se *services.StepError
	if errors.As(err, &se) {
		fmt.Fprintln(a.out, se.Message)
		return
	}
	a.logger.Error(ctx, "command failed", "error", err)
	fmt.Fprintln(a.out, "Error:", err)
}
