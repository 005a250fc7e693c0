package service

import (
	"context"
	"errors"
	"time"

	"routevendor/internal/config"
	"routevendor/internal/dto"
	"routevendor/internal/model"
	"routevendor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("credenciales invalidas")
	ErrInvalidToken       = errors.New("refresh token invalido o expirado")
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.VendorRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.VendorRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	vendor, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(vendor)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	idStr, ok := claims["vendor_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil || !vendor.Active {
		return nil, errors.New("vendedor no encontrado o inactivo")
	}
	return s.issue(vendor)
}

func (s *authService) issue(v *model.Vendor) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(v, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(v, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.VendorResponse{
			ID:       v.ID.String(),
			Username: v.Username,
			Name:     v.Name,
			Email:    v.Email,
			Role:     v.Role,
			Active:   v.Active,
		},
	}, nil
}

func (s *authService) generateToken(v *model.Vendor, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"vendor_id": v.ID.String(),
		"username":  v.Username,
		"role":      v.Role,
		"exp":       now.Add(duration).Unix(),
		"iat":       now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword returns the bcrypt hash stored for vendor accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(hash), err
}
