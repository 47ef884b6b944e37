// Package services contains server-side business logic. This file implements
// UserService: registration, identity lookup, pattern verification and the
// reset code lifecycle.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// resetCodeDigits is the length of an issued reset code.
const resetCodeDigits = 6

// VerifyResult is what a successful verification hands back.
type VerifyResult struct {
	User            *models.User
	Token           string
	Distance        int
	MatchPercentage float64
}

type UserService struct {
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	resetCodeValidityDuration   time.Duration
	now                         func() time.Time
	newCode                     func() (string, error)
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &UserService{
		repomanager:                 m,
		logger:                      logger.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		resetCodeValidityDuration:   cfg.ResetCodeValidityDuration,
		now:                         time.Now,
		newCode:                     func() (string, error) { return common.RandomDigits(resetCodeDigits) },
	}
}

// Register creates a user whose credential is the digest of pattern.
func (s *UserService) Register(ctx context.Context, name, email, pattern string) (*models.User, error) {
	if name == "" || email == "" || pattern == "" {
		return nil, common.ErrorValidation
	}

	user := &models.User{Name: name, Email: email, PatternDigest: cryptox.Digest([]byte(pattern))}

	var created *models.User
	err := s.repomanager.DB().Update(func(tx *bolt.Tx) error {
		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Challenge is the first login step: it only confirms email is registered.
func (s *UserService) Challenge(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrorValidation
	}
	return s.getUser(ctx, email)
}

// Verify compares pattern with the stored credential of email. Patterns
// match only when their digests are identical.
func (s *UserService) Verify(ctx context.Context, email, pattern string) (*VerifyResult, error) {
	if email == "" || pattern == "" {
		return nil, common.ErrorValidation
	}

	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	candidate := cryptox.Digest([]byte(pattern))
	if subtle.ConstantTimeCompare([]byte(user.PatternDigest), []byte(candidate)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &VerifyResult{User: user, Token: token, Distance: 0, MatchPercentage: 100}, nil
}

// IssueResetCode stores a fresh code for email, replacing any earlier one,
// and returns it so it can be delivered out of band.
func (s *UserService) IssueResetCode(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", common.ErrorValidation
	}

	code, err := s.newCode()
	if err != nil {
		return "", common.ErrorInternal
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	err = s.repomanager.DB().Update(func(tx *bolt.Tx) error {
		if _, err := s.repomanager.Users(tx).GetUserByEmail(ctx, email); err != nil {
			return err
		}
		return s.repomanager.ResetCodes(tx).Create(ctx, email, hash, s.resetCodeValidityDuration)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		return "", fmt.Errorf("error storing reset code: %w", err)
	}

	s.logger.Info(ctx, "reset code issued", "email", email, "code", code)
	return code, nil
}

// ResetPattern redeems code and replaces the credential of email. A code
// is single use; an expired one is discarded.
func (s *UserService) ResetPattern(ctx context.Context, email, code, pattern string) error {
	if email == "" || code == "" || pattern == "" {
		return common.ErrorValidation
	}

	var expired bool
	err := s.repomanager.DB().Update(func(tx *bolt.Tx) error {
		codes := s.repomanager.ResetCodes(tx)

		stored, err := codes.Find(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrResetCodeInvalid
			}
			return err
		}
		if !stored.Expires.After(s.now()) {
			expired = true
			return codes.Delete(ctx, email)
		}
		if bcrypt.CompareHashAndPassword(stored.CodeHash, []byte(code)) != nil {
			return common.ErrResetCodeInvalid
		}

		if err := s.repomanager.Users(tx).UpdatePatternDigest(ctx, email, cryptox.Digest([]byte(pattern))); err != nil {
			return err
		}
		return codes.Delete(ctx, email)
	})
	if err != nil {
		if errors.Is(err, common.ErrResetCodeInvalid) || errors.Is(err, common.ErrorNotFound) {
			return common.ErrResetCodeInvalid
		}
		return fmt.Errorf("error resetting pattern: %w", err)
	}
	if expired {
		return common.ErrResetCodeInvalid
	}

	s.logger.Info(ctx, "pattern reset", "email", email)
	return nil
}

func (s *UserService) getUser(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := s.repomanager.DB().View(func(tx *bolt.Tx) error {
		var err error
		user, err = s.repomanager.Users(tx).GetUserByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
