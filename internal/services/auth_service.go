package services

import (
	"net/http"
	"time"

	"ulp_backend/internal/auth"
	"ulp_backend/internal/config"
	"ulp_backend/internal/logger"
	"ulp_backend/internal/models"
	"ulp_backend/internal/services/dto"
	"ulp_backend/pkg/apperrors"
)

type AuthService interface {
	// Login сверяет пару логин/пароль с allow-list и на успех выпускает
	// сессионный токен с истечением. Успешный логин попадает в аудит,
	// если запрос не с restricted-хоста.
	Login(req *dto.LoginRequest, meta RequestMeta) (*dto.LoginResponse, error)
	ValidateToken(tokenStr string) (*auth.Claims, error)
}

type authService struct {
	cfg        *config.Config
	logService LogService
}

func NewAuthService(cfg *config.Config, logService LogService) AuthService {
	return &authService{
		cfg:        cfg,
		logService: logService,
	}
}

func (s *authService) Login(req *dto.LoginRequest, meta RequestMeta) (*dto.LoginResponse, error) {
	if !auth.CheckCredentials(s.cfg.Auth.Admins, req.Username, req.Password) {
		logger.Warn("failed admin login attempt", "username", req.Username, "ip", meta.IP)
		return nil, apperrors.ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLMin) * time.Minute
	token, err := auth.GenerateToken(s.cfg.Auth.JWTSecret, req.Username, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.logService.Record(models.LogTypeStaff, models.LogActionLogin, map[string]interface{}{
		"username": req.Username,
	}, nil, meta)

	logger.Info("admin logged in", "username", req.Username)
	return &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	}, nil
}

func (s *authService) ValidateToken(tokenStr string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(s.cfg.Auth.JWTSecret, tokenStr)
	if err != nil {
		if err == auth.ErrTokenExpired {
			return nil, apperrors.New(apperrors.CodeTokenExpired, "auth", "Session expired", http.StatusUnauthorized)
		}
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid session token", http.StatusUnauthorized)
	}
	return claims, nil
}
