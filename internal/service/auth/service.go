package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/repository"
	"github.com/jwalitptl/clinic-portal/pkg/auth"
	"github.com/jwalitptl/clinic-portal/pkg/security"
)

type Service struct {
	repo     repository.AdminRepository
	hasher   security.PasswordHasher
	sessions *auth.SessionManager
}

func NewService(repo repository.AdminRepository, hasher security.PasswordHasher, sessions *auth.SessionManager) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Login checks the credentials against the seeded admin table and returns a
// signed session token. An unknown username and a wrong password both come
// back as ErrInvalidCredentials so the caller cannot tell them apart.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", model.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(admin.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("admin logged in")
	return token, nil
}

// ValidateSession verifies a session token from the cookie.
func (s *Service) ValidateSession(token string) (*model.SessionClaims, error) {
	return s.sessions.Verify(token)
}
