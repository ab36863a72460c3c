package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	repo "github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// UserService handles registration, login and sessions.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client // optional; when set every token needs a live session
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	CompanyName string
	Role        string
}

// AuthResult is a user plus a freshly issued access token.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	company, role, ok := entity.CanonicalRole(in.CompanyName, in.Role)
	if !ok {
		return nil, ErrUnknownRole
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:       email,
		Password:    hash,
		Name:        strings.TrimSpace(in.Name),
		CompanyName: company,
		Role:        role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "company": company, "role": role}).Info("user registered")
	}
	return s.issue(ctx, u)
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		helpers.SpendPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout ends the session behind claims.
func (s *UserService) Logout(ctx context.Context, claims *helpers.Claims) error {
	if s.Redis == nil || claims == nil {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, helpers.KeySession(claims.UserID, claims.ID))
}

// SessionActive reports whether the session behind claims is still live. Without
// Redis every valid token is accepted.
func (s *UserService) SessionActive(ctx context.Context, claims *helpers.Claims) (bool, error) {
	if s.Redis == nil {
		return true, nil
	}
	return helpers.RedisExists(ctx, s.Redis, helpers.KeySession(claims.UserID, claims.ID))
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && u == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// issue signs an access token and records its session in Redis.
func (s *UserService) issue(ctx context.Context, u *entity.User) (*AuthResult, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(helpers.TokenSubject{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Company: u.CompanyName,
		Role:    u.Role,
	}, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}

	if s.Redis != nil {
		key := helpers.KeySession(u.ID, sid)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"company":    u.CompanyName,
			"role":       u.Role,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, time.Until(exp))
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			if s.Logger != nil {
				s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
			}
			return nil, rErr
		}
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// PrincipalFromClaims maps verified token claims to the caller identity.
func PrincipalFromClaims(c *helpers.Claims) *entity.Principal {
	return &entity.Principal{
		ID:      c.UserID,
		Email:   c.Email,
		Name:    c.Name,
		Company: c.Company,
		Role:    c.Role,
	}
}
