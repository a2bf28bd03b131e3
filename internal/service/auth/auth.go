// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"jobportal-service/internal/domain/user"
	xerrors "jobportal-service/internal/pkg/errors"
	"jobportal-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// LoginLimiter throttles repeated login attempts.
type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, email string) error
}

// ResumeStore keeps uploaded resumes.
type ResumeStore interface {
	SaveResume(ctx context.Context, fh *multipart.FileHeader) (*user.Resume, error)
	DeleteResume(ctx context.Context, key string) error
}

type AuthService struct {
	users       UserRepository
	jwtManager  *jwt.Manager
	rateLimiter LoginLimiter
	resumes     ResumeStore
	hashCost    int
	logger      *zap.Logger
}

type Option func(*AuthService)

// WithLoginLimiter enables login throttling.
func WithLoginLimiter(l LoginLimiter) Option {
	return func(s *AuthService) { s.rateLimiter = l }
}

// WithResumeStore enables resume uploads on registration.
func WithResumeStore(r ResumeStore) Option {
	return func(s *AuthService) { s.resumes = r }
}

// WithHashCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *AuthService) { s.hashCost = cost }
}

func NewAuthService(users UserRepository, jwtManager *jwt.Manager, logger *zap.Logger, opts ...Option) *AuthService {
	s := &AuthService{
		users:      users,
		jwtManager: jwtManager,
		hashCost:   bcrypt.DefaultCost,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========== Registration ==========

// Register creates a new account and issues its first credential
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest, resume *multipart.FileHeader) (_ *user.User, _ *jwt.Credential, err error) {
	if !user.ValidRole(req.Role) {
		return nil, nil, xerrors.Invalid("Role must be either Job Seeker or Employer.")
	}
	niches := req.Niches()
	if req.Role == user.RoleJobSeeker && len(niches) == 0 {
		return nil, nil, xerrors.Invalid("Please provide at least one preferred job niche.")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, nil, xerrors.ErrDuplicateEntry
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         req.Role,
		Niches:       niches,
		CoverLetter:  req.CoverLetter,
		PasswordHash: string(hashedPassword),
	}

	if resume != nil {
		if s.resumes == nil {
			return nil, nil, xerrors.Invalid("Resume uploads are not enabled.")
		}
		stored, saveErr := s.resumes.SaveResume(ctx, resume)
		if saveErr != nil {
			return nil, nil, fmt.Errorf("failed to store resume: %w", saveErr)
		}
		u.Resume = stored

		// The account never existed, so neither should its upload.
		defer func() {
			if err == nil {
				return
			}
			if delErr := s.resumes.DeleteResume(context.WithoutCancel(ctx), stored.Key); delErr != nil {
				s.logger.Warn("failed to remove orphaned resume",
					zap.String("key", stored.Key),
					zap.Error(delErr),
				)
			}
		}()
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	cred, err := s.issue(u)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("role", u.Role),
	)
	return u, cred, nil
}

// ========== Login ==========

// Login authenticates a user with email, password and role
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, *jwt.Credential, error) {
	if s.rateLimiter != nil {
		allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Email)
		if err != nil {
			// Fail open when Redis is unreachable.
			s.logger.Warn("login limiter unavailable", zap.Error(err))
		} else if !allowed {
			return nil, nil, xerrors.ErrRateLimited
		}
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, xerrors.ErrInvalidCredentials
	}

	if u.Role != req.Role {
		return nil, nil, xerrors.ErrRoleMismatch
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	cred, err := s.issue(u)
	if err != nil {
		return nil, nil, err
	}
	return u, cred, nil
}

// ========== Current user ==========

// GetUser loads the account a validated token points at
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// ValidateToken re-validates a session token. There is no server-side
// session record; the signature and expiry are the whole check.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}
	return claims, nil
}

func (s *AuthService) issue(u *user.User) (*jwt.Credential, error) {
	cred, err := s.jwtManager.Generator.Issue(jwt.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return cred, nil
}
