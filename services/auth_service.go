package services

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
	"github.com/iroda0103/dastavka/utils"
)

type AuthService struct {
	Repo      *repository.UserRepository
	JWTSecret string
	JWTTTL    time.Duration
	log       *slog.Logger
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{Repo: repo, JWTSecret: secret, JWTTTL: ttl, log: log}
}

type RegisterReq struct {
	Phone      string          `json:"phone" binding:"required"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Role       entity.UserRole `json:"role" binding:"required,oneof=client driver admin restaurant chef"`
	TelegramID *string         `json:"telegramId"`
	CityID     *uint           `json:"cityId"`
}

type LoginReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRes struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a user account. The password is optional: telegram-only
// users never log in with one.
func (s *AuthService) Register(req *RegisterReq) (*entity.User, error) {
	s.log.Info("registering user", "phone", req.Phone, "role", req.Role)

	count, err := s.Repo.CountByPhone(req.Phone)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to register user")
	}
	if count > 0 {
		s.log.Warn("registration failed: phone exists", "phone", req.Phone)
		return nil, apperr.Conflict("user with phone %s already exists", req.Phone)
	}

	user := entity.User{
		Phone:      req.Phone,
		Name:       req.Name,
		Address:    req.Address,
		Role:       req.Role,
		TelegramID: req.TelegramID,
		CityID:     req.CityID,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to register user")
		}
		user.Password = string(hash)
	}

	if err := s.Repo.Create(&user); err != nil {
		s.log.Error("registration failed", "error", err)
		return nil, apperr.Wrap(err, "failed to register user")
	}

	s.log.Info("user registered", "userId", user.ID)
	return &user, nil
}

// Login verifies phone plus password and issues a signed token carrying the
// user's id and role.
func (s *AuthService) Login(req *LoginReq) (*LoginRes, error) {
	s.log.Info("login attempt", "phone", req.Phone)

	user, err := s.Repo.FindByPhone(req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("login failed: user not found", "phone", req.Phone)
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(err, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.log.Warn("login failed: wrong password", "userId", user.ID)
		return nil, apperr.Unauthorized("phone or password incorrect")
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, apperr.Wrap(err, "login failed")
	}

	s.log.Info("user logged in", "userId", user.ID)
	return &LoginRes{User: user, Token: token}, nil
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(err, "failed to get profile")
	}
	return user, nil
}
