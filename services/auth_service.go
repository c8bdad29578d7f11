package services

import (
	"context"
	"strings"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/validator"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenManager
	logger logger.Logger
}

type AuthServiceOptions struct {
	Users  repository.UserRepository
	Tokens *TokenManager
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{users: opts.Users, tokens: opts.Tokens, logger: opts.Logger}
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "could not issue token", err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}

func (s *AuthService) create(ctx context.Context, in RegisterInput, role int) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user := &models.User{Name: in.Name, Email: in.Email, Phone: in.Phone, Password: in.Password, Role: role}
	if err := validator.ValidateUser(user); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "could not hash password", err)
	}
	user.Password = string(hash)
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUserExists, "email is already registered", apperrors.ErrUserAlreadyExists)
		}
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// Register creates a client account and logs it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	user, err := s.create(ctx, in, constants.RoleClient)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user %d registered", user.ID)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperrors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "invalid email or password", apperrors.ErrInvalidPassword)
	}
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "invalid email or password", apperrors.ErrInvalidPassword)
	}
	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator when the email is not registered yet
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, strings.ToLower(email)); err == nil {
		return nil
	} else if !apperrors.Is(err, repository.ErrNotFound) {
		return storeError(err, apperrors.ErrUserNotFound)
	}
	user, err := s.create(ctx, RegisterInput{Name: name, Email: email, Password: password}, constants.RoleAdmin)
	if err != nil {
		return err
	}
	s.logger.Info("bootstrap admin %s created (id=%d)", user.Email, user.ID)
	return nil
}
