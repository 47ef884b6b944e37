package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

type UserService interface {
	Register(ctx context.Context, name, email, pattern string) (*models.User, error)
	Challenge(ctx context.Context, email string) (*models.User, error)
	Verify(ctx context.Context, email, pattern string) (*services.VerifyResult, error)
	IssueResetCode(ctx context.Context, email string) (string, error)
	ResetPattern(ctx context.Context, email, code, pattern string) error
}

type ScoreService interface {
	Record(ctx context.Context, email string, score, moves int) (*models.Score, error)
	List(ctx context.Context, email string) ([]*models.Score, error)
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageData string `json:"image_data"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email     string `json:"email"`
	ImageData string `json:"image_data"`
}

type resetRequest struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ImageData string `json:"image_data"`
}

type scoreRequest struct {
	Email string `json:"email"`
	Score int    `json:"score"`
	Moves int    `json:"moves"`
}

type userView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type scoreView struct {
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

func viewOf(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.Register(r.Context(), req.Name, req.Email, req.ImageData)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "Email already registered")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    viewOf(user),
	})
}

func (s *HTTPServer) loginChallenge(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.Challenge(r.Context(), req.Email)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "User found", "email": user.Email})
}

func (s *HTTPServer) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.users.Verify(r.Context(), req.Email, req.ImageData)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Missing email or drawing")
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, common.ErrorUnauthorized):
		s.logger.Warn(r.Context(), "pattern mismatch", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "Authentication failed.")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Authentication successful",
		"token":            res.Token,
		"user":             viewOf(res.User),
		"distance":         res.Distance,
		"match_percentage": res.MatchPercentage,
	})
}

func (s *HTTPServer) forgotPattern(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}

	_, err := s.users.IssueResetCode(r.Context(), req.Email)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Reset code sent"})
}

func (s *HTTPServer) resetPattern(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decode(w, r, &req) {
		return
	}

	err := s.users.ResetPattern(r.Context(), req.Email, req.Code, req.ImageData)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, common.ErrResetCodeInvalid):
		writeError(w, http.StatusBadRequest, "Invalid or expired reset code")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Pattern reset successfully"})
}

func (s *HTTPServer) submitScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}

	email := emailFromContext(r.Context())
	if req.Email != "" && req.Email != email {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	saved, err := s.scores.Record(r.Context(), email, req.Score, req.Moves)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Invalid score")
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Score saved",
		"score":   scoreView{Score: saved.Score, Moves: saved.Moves, CreatedAt: saved.CreatedAt},
	})
}

func (s *HTTPServer) listScores(w http.ResponseWriter, r *http.Request) {
	list, err := s.scores.List(r.Context(), emailFromContext(r.Context()))
	if err != nil {
		s.internal(w, r, err)
		return
	}

	out := make([]scoreView, 0, len(list))
	for _, sc := range list {
		out = append(out, scoreView{Score: sc.Score, Moves: sc.Moves, CreatedAt: sc.CreatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": out})
}

func (s *HTTPServer) internal(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), err.Error(), "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
