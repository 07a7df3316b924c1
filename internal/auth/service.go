package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/feastlane/feastlane-backend/internal/address"
	"github.com/feastlane/feastlane-backend/internal/users"
	pkgauth "github.com/feastlane/feastlane-backend/pkg/auth"
	"github.com/feastlane/feastlane-backend/pkg/config"
	"github.com/feastlane/feastlane-backend/pkg/db"
	"github.com/feastlane/feastlane-backend/pkg/db/models"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	JWTConfig      config.JWTConfig
}

type service struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// NewService constructs the signup/login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, errors.New("auth service requires a database client")
	}
	return &service{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
	}, nil
}

// Signup registers the account and, when an address line is supplied, stores
// it as the user's first delivery address inside the same transaction.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "email is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		addressRepo := address.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return apperrors.New(apperrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			Contact:      req.Contact,
			DOB:          req.DOB,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return apperrors.New(apperrors.CodeConflict, "email already registered")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "create user")
		}

		if req.AddressLine != nil && strings.TrimSpace(*req.AddressLine) != "" {
			addr, err := addressRepo.Create(ctx, &models.Address{
				UserID:      user.ID,
				AddressLine: strings.TrimSpace(*req.AddressLine),
				City:        req.City,
				State:       req.State,
				Pincode:     req.Pincode,
			})
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "create address")
			}
			if err := userRepo.UpdateProfile(ctx, user.ID, users.UpdateProfileDTO{AddressID: &addr.ID}); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "link address")
			}
			user.AddressID = &addr.ID
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(created)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	userRepo := users.NewRepository(s.db.DB())
	user, err := userRepo.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "mint jwt")
	}
	return &AuthResponse{
		AccessToken: token,
		User:        users.FromModel(user),
	}, nil
}
