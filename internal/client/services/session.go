package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// SessionStore is the Session State contract the flows depend on.
type SessionStore interface {
	Set(ctx context.Context, s models.Session) error
	Get(ctx context.Context) (models.Session, bool, error)
	Clear(ctx context.Context) error
}

// SessionService keeps the authenticated identity in the local database so
// it survives restarts. Construct one per process and share it.
type SessionService struct {
	db     *sql.DB
	logger logging.Logger
}

func NewSessionService(db *sql.DB, logger logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &SessionService{db: db, logger: logger.With("component", "session")}
}

// Set replaces the stored session.
func (s *SessionService) Set(ctx context.Context, sess models.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUser, user); err != nil {
			return err
		}
		if sess.Token == "" {
			return repo.Delete(ctx, keyToken)
		}
		return repo.Set(ctx, keyToken, []byte(sess.Token))
	})
	if err != nil {
		return fmt.Errorf("session save error: %w", err)
	}

	s.logger.Info(ctx, "session stored", "email", sess.User.Email)
	return nil
}

// Get returns the stored session; ok is false when there is none.
func (s *SessionService) Get(ctx context.Context) (models.Session, bool, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, keyUser)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("session load error: %w", err)
	}
	if raw == nil {
		return models.Session{}, false, nil
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess.User); err != nil {
		return models.Session{}, false, fmt.Errorf("session decode error: %w", err)
	}

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("session load error: %w", err)
	}
	sess.Token = string(token)
	return sess, true, nil
}

// Clear removes the stored session. The metadata table holds nothing but
// the session record, so it is emptied as a whole.
func (s *SessionService) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("session clear error: %w", err)
	}
	s.logger.Info(ctx, "session cleared")
	return nil
}

// Enter is what the welcome surface does on entry: it returns the stored
// identity, or redirects to login when there is none.
func Enter(ctx context.Context, store SessionStore) (models.User, Screen, error) {
	sess, ok, err := store.Get(ctx)
	if err != nil {
		return models.User{}, ScreenLogin, err
	}
	if !ok {
		return models.User{}, ScreenLogin, nil
	}
	return sess.User, ScreenWelcome, nil
}

// Logout clears Session State and sends the user to login.
func Logout(ctx context.Context, store SessionStore) (Screen, error) {
	if err := store.Clear(ctx); err != nil {
		return ScreenNone, err
	}
	return ScreenLogin, nil
}
