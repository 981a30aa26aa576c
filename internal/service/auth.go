package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/davitkhm/docvault/internal/events"
	"github.com/davitkhm/docvault/internal/hash"
	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/models"
	"github.com/davitkhm/docvault/internal/repo"
	"github.com/davitkhm/docvault/internal/tokens"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrMissingUserID      = errors.New("user id is required")
)

type AuthService struct {
	Repo   *repo.GormRepo
	Codec  *tokens.Codec
	Events events.Publisher
}

// UserProjection is the public view of a user record. It never carries the
// password hash.
type UserProjection struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken string
	User        UserProjection
}

type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*UserProjection, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if violations := PasswordViolations(password); len(violations) > 0 {
		return nil, &WeakPasswordError{Violations: violations}
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	now := time.Now().Unix()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
		LastLogout:   &now,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_conflict", "email", email)
			return nil, err
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	s.publishUserEvent(ctx, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &UserProjection{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.Codec.Issue(user.ID, time.Time{})
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, err
	}

	s.publishUserEvent(ctx, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &LoginResult{
		AccessToken: accessToken,
		User:        UserProjection{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// Logout bumps the user's revocation watermark to now, invalidating every
// token issued at or before this moment. Store failures are not propagated:
// the caller discards the token either way, so the result only reports
// whether the watermark write took.
func (s *AuthService) Logout(ctx context.Context, userID string) (*LogoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if userID == "" {
		return nil, ErrMissingUserID
	}

	if err := s.Repo.UpdateLastLogout(ctx, userID, time.Now().Unix()); err != nil {
		l.Error("logout_failed", "user_id", userID, "error", err)
		return &LogoutResult{Success: false, Message: "logout failed"}, nil
	}

	s.publishUserEvent(ctx, userID, map[string]any{
		"type":    "user_logged_out",
		"user_id": userID,
	})

	return &LogoutResult{Success: true, Message: "logged out"}, nil
}

func (s *AuthService) publishUserEvent(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Events.Publish(pctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicUserEvents, "error", err)
	}
}
