package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// --- Auth DTOs ---
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Parent       *models.Parent `json:"parent"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	GetProfile(parentID string) (*models.Parent, error)
}

// --- authService Implementation ---
type authService struct {
	parentRepo repositories.ParentRepository
	db         *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(parentRepo repositories.ParentRepository, db *sql.DB) AuthService {
	return &authService{
		parentRepo: parentRepo,
		db:         db,
	}
}

// Register creates a parent account with a bcrypt password hash and issues tokens.
func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrParentValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrParentValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, 8) {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashedStr := string(hashed)

	parent := &models.Parent{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hashedStr,
	}
	if err := s.parentRepo.CreateParent(s.db, parent); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create parent account: %w", err)
	}

	return s.issueTokens(parent)
}

// Login verifies the password against the stored bcrypt hash and issues tokens.
// Accounts created without a password cannot log in.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	parent, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up parent for login: %w", err)
	}
	if parent.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*parent.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(parent)
}

func (s *authService) GetProfile(parentID string) (*models.Parent, error) {
	parent, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get parent profile: %w", err)
	}
	return parent, nil
}

func (s *authService) issueTokens(parent *models.Parent) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(parent.ID, parent.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &AuthResponse{
		Parent:       parent,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
