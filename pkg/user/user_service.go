package user

import (
	"RecipeBook/domain"
	"RecipeBook/internal/utils"
	"RecipeBook/internal/utils/mailing"
	"RecipeBook/internal/utils/storage"
	"RecipeBook/pkg/jwt"
	"RecipeBook/pkg/repository"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, username string) (domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		UpdateProfilePicture(ctx context.Context, username, filename string, file io.Reader, contentType string) (string, error)
	}

	userService struct {
		repo       repository.Repository
		hasher     repository.PasswordHasher
		jwtService jwt.JWTService
		s3         *storage.AwsS3
	}
)

func NewUserService(repo repository.Repository, hasher repository.PasswordHasher, jwtService jwt.JWTService, s3 *storage.AwsS3) UserService {
	return &userService{
		repo:       repo,
		hasher:     hasher,
		jwtService: jwtService,
		s3:         s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	existing, err := s.repo.GetUser(ctx, req.Username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if existing != nil {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}
	user := domain.NewUser(req.Username, hash)
	user.Email = req.Email
	if err := s.repo.AddUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	// Welcome mail failures must not roll back the registration.
	if user.Email != "" {
		body := fmt.Sprintf(
			"<p>Hi %s, welcome to RecipeBook!</p><p>Start browsing at <a href=%q>%s</a>.</p>",
			user.Username, utils.GetConfig("APP_URL"), utils.GetConfig("APP_URL"),
		)
		if err := mailing.SendMail(user.Email, "Welcome to RecipeBook", body); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
		}
	}

	return domain.UserResponse{
		Username: user.Username,
		Token:    s.jwtService.GenerateTokenUser(user.Username, domain.RoleUser),
		Email:    user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.repo.GetUser(ctx, req.Username)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, req.Password) {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}
	token := s.jwtService.GenerateTokenUser(user.Username, domain.RoleUser)
	return domain.LoginResponse{
		Username: user.Username,
		Token:    token,
	}, nil
}

func (s *userService) Me(ctx context.Context, username string) (domain.UserResponse, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if user == nil {
		return domain.UserResponse{}, domain.ErrUnknownUser
	}
	return domain.UserResponse{
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Favourites:     len(user.Favourites),
		Reviews:        len(user.Reviews),
	}, nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.repo.GetUser(ctx, req.Username)
	if err != nil {
		return err
	}
	// Unknown usernames get the same answer as known ones so the endpoint
	// cannot be used to probe which accounts exist.
	if user == nil || user.Email == "" {
		return nil
	}

	token, err := s.jwtService.GenerateTokenResetPassword(
		map[string]any{"username": user.Username},
		15*time.Minute,
	)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in 15 minutes.</p>",
		user.Username, link,
	)
	return mailing.SendMail(user.Email, "Reset your RecipeBook password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return domain.ErrTokenInvalid
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, username, hash)
}

func (s *userService) UpdateProfilePicture(ctx context.Context, username, filename string, file io.Reader, contentType string) (string, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUnknownUser
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("profile-pictures/%s%s", uuid.NewString(), ext)
	url, err := s.s3.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateUserProfilePicture(ctx, username, url); err != nil {
		return "", err
	}
	return url, nil
}
