package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// AuthService implements registration and login. Tokens carry both admin
// claim encodings so downstream checks can OR them.
type AuthService struct {
	users     ports.UserRepository
	claims    ports.ClaimsRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, claims ports.ClaimsRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, claims: claims, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates the auth record and the default profile in one step:
// zero score, non-admin, deterministic placeholder avatar.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.DisplayMitarbeiter,
		Score:        0,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// The placeholder avatar is keyed to the generated id, so it is stable
	// across renames. The backfill never fails the registration.
	user.Avatar = domain.DefaultAvatarURL(user.ID)
	if err := s.users.UpdateProfile(ctx, user.ID, user.Name, user.Avatar, ""); err != nil {
		s.log.Warn().Err(err).Str("user", user.ID).Msg("avatar backfill failed")
	}
	return user, nil
}

// Login authenticates against the stored hash and mints a token whose
// admin claims come from the trust-claim store, never from the profile.
// A claims-store failure fails closed: the token is minted without
// administrator privileges.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user.Locked {
		return "", nil, domain.ErrUserLocked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	trust, err := s.claims.Get(ctx, user.ID)
	if err != nil {
		trust = domain.TrustClaims{}
	}
	user.IsAdmin = trust.IsAdmin()

	token, err := s.generateToken(user, trust)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User, trust domain.TrustClaims) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.ID,
		"name":  user.Name,
		"role":  trust.Role,
		"admin": trust.Admin,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
