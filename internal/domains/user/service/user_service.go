package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/repository"
	pkgjwt "blog-backend/pkg/jwt"
)

// Service authenticates the author and issues session tokens.
type Service interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	repo       repository.Repository
	jwtManager *pkgjwt.Manager
}

func NewUserService(repo repository.Repository, jwtManager *pkgjwt.Manager) Service {
	return &userService{repo: repo, jwtManager: jwtManager}
}

// Login verifies the password and issues an access/refresh token pair. A
// missing account and a wrong password fail identically.
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh trades a valid refresh token for a fresh pair. The account is
// re-read so revoked or changed users drop out on the next refresh.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) issueTokens(user *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.NewUserDTO(user),
	}, nil
}
