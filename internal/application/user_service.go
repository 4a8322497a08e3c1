package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
	"github.com/reciclaqui/backend/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserService orchestrates account use cases: registration, login,
// profile, and point redemption.
type UserService struct {
	Repo      repository.UserRepository
	UoW       repository.UnitOfWork
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, uow repository.UnitOfWork, jwt *helpers.JWTManager, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:      repo,
		UoW:       uow,
		JWT:       jwt,
		Redis:     rdb,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
	}
}

// UserView is the serialized form of a user; the password hash never
// leaves the domain.
type UserView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EcopointID    string `json:"ecopoint_id,omitempty"`
	PointsBalance int    `json:"points_balance"`
}

func NewUserView(u *entity.User) UserView {
	return UserView{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email.Value(),
		Role:          string(u.Role),
		EcopointID:    u.EcopointID,
		PointsBalance: u.Balance.Value(),
	}
}

type RegisterUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EcopointID string
}

// Register creates an account inside a unit of work so the
// UserRegistered event (welcome email, logging) fires only after the row
// is committed.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*UserView, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	out, err := s.UoW.Execute(ctx, func(txCtx context.Context) (repository.WorkResult, error) {
		existing, err := s.Repo.FindByEmail(txCtx, in.Email)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if existing != nil {
			return repository.WorkResult{}, ErrEmailTaken
		}

		user, err := entity.NewUser(in.Name, in.Email, in.Password, role, in.EcopointID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if err := s.Repo.Create(txCtx, user); err != nil {
			return repository.WorkResult{}, err
		}

		view := NewUserView(user)
		return repository.WorkResult{
			Result:     &view,
			Aggregates: []event.Source{user},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*UserView), nil
}

type RedeemPointsInput struct {
	UserID      string
	Points      int
	Description string
}

type RedeemPointsResult struct {
	Message         string `json:"message"`
	RemainingPoints int    `json:"remaining_points"`
}

// RedeemPoints debits a recycler's balance inside a unit of work; the
// PointsRedeemed event is published only if the balance update commits.
func (s *UserService) RedeemPoints(ctx context.Context, in RedeemPointsInput) (*RedeemPointsResult, error) {
	out, err := s.UoW.Execute(ctx, func(txCtx context.Context) (repository.WorkResult, error) {
		user, err := s.Repo.FindByID(txCtx, in.UserID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if user == nil {
			return repository.WorkResult{}, fmt.Errorf("user %s: %w", in.UserID, repository.ErrNotFound)
		}
		if !user.IsRecycler() {
			return repository.WorkResult{}, entity.ErrRoleMismatch
		}

		if err := user.RedeemPoints(in.Points, in.Description); err != nil {
			return repository.WorkResult{}, err
		}
		if err := s.Repo.Save(txCtx, user); err != nil {
			return repository.WorkResult{}, err
		}

		return repository.WorkResult{
			Result: &RedeemPointsResult{
				Message:         fmt.Sprintf("%d points redeemed successfully!", in.Points),
				RemainingPoints: user.Balance.Value(),
			},
			Aggregates: []event.Source{user},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*RedeemPointsResult), nil
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Authenticate validates email/password and returns the user without
// issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in
// Redis. The session hash carries the role so role-gated routes avoid a
// database round trip.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email.Value(),
			"name":       u.Name,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResult{UserID: u.ID, Email: u.Email.Value(), Name: u.Name, Role: string(u.Role)}, pair, nil
}

// Refresh rotates the session id and both tokens when the refresh token
// matches the active session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.FindByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserView, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	view := NewUserView(u)
	return &view, nil
}

type UpdateProfileInput struct {
	Name string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*UserView, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, err
	}
	view := NewUserView(u)
	return &view, nil
}

// UploadAvatar stores a profile image in GCS and returns its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

// Users lists accounts, optionally filtered by role.
func (s *UserService) Users(ctx context.Context, role string) ([]UserView, error) {
	var (
		users []*entity.User
		err   error
	)
	if role != "" {
		parsed, pErr := entity.ParseRole(strings.ToUpper(role))
		if pErr != nil {
			return nil, pErr
		}
		users, err = s.Repo.FindByRole(ctx, parsed)
	} else {
		users, err = s.Repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out, nil
}
