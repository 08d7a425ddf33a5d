package service

import (
	"errors"

	"smartwaste/waste-service/internal/app/waste/entity"
	"smartwaste/waste-service/internal/app/waste/util"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdminService выдает JWT администратору карты
// Учетная запись одна и задается конфигурацией, хранить таблицу
// пользователей ради единственного логина нет смысла
type AdminService struct {
	username     string
	passwordHash string
	jwtManager   *util.JWTManager
}

func NewAdminService(username, passwordHash string, jwtManager *util.JWTManager) *AdminService {
	return &AdminService{
		username:     username,
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
	}
}

// Login сверяет пароль с bcrypt hash и выдает токен
func (s *AdminService) Login(req *entity.AdminLoginRequest) (*entity.AdminLoginResponse, error) {
	if req.Username != s.username || s.passwordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(req.Username)
	if err != nil {
		return nil, err
	}

	return &entity.AdminLoginResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
