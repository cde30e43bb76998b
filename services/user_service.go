package services

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

type UserService struct {
	Repo *repository.UserRepository
	log  *slog.Logger
}

func NewUserService(repo *repository.UserRepository, log *slog.Logger) *UserService {
	return &UserService{Repo: repo, log: log}
}

type CreateUserReq struct {
	Phone      string          `json:"phone" binding:"required"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Role       entity.UserRole `json:"role" binding:"required,oneof=client driver admin restaurant chef"`
	TelegramID *string         `json:"telegramId"`
	CityID     *uint           `json:"cityId"`
}

type UpdateUserReq struct {
	Phone      *string          `json:"phone"`
	Password   *string          `json:"password"`
	Name       *string          `json:"name"`
	Address    *string          `json:"address"`
	Role       *entity.UserRole `json:"role" binding:"omitempty,oneof=client driver admin restaurant chef"`
	TelegramID *string          `json:"telegramId"`
	CityID     *uint            `json:"cityId"`
}

func (s *UserService) Create(req *CreateUserReq) (*entity.User, error) {
	s.log.Info("creating user", "phone", req.Phone, "role", req.Role)

	count, err := s.Repo.CountByPhone(req.Phone)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to create user")
	}
	if count > 0 {
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
			return nil, apperr.Wrap(err, "failed to create user")
		}
		user.Password = string(hash)
	}

	if err := s.Repo.Create(&user); err != nil {
		s.log.Error("user creation failed", "error", err)
		return nil, apperr.Wrap(err, "failed to create user")
	}

	s.log.Info("user created", "userId", user.ID)
	return &user, nil
}

func (s *UserService) FindAll(role, telegramID string) ([]entity.User, error) {
	users, err := s.Repo.List(role, telegramID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to fetch users")
	}
	s.log.Info("users listed", "count", len(users))
	return users, nil
}

func (s *UserService) FindOnlyRestaurants() ([]entity.User, error) {
	users, err := s.Repo.ListByRole(entity.RoleRestaurant)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to fetch restaurants")
	}
	return users, nil
}

func (s *UserService) FindByID(id uint) (*entity.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to find user")
	}
	return user, nil
}

// FindByTelegramID returns nil when no account is linked yet; the bot
// treats that as "not registered", not as an error.
func (s *UserService) FindByTelegramID(telegramID string) (*entity.User, error) {
	user, err := s.Repo.FindByTelegramID(telegramID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to find user by telegram id")
	}
	return user, nil
}

func (s *UserService) Update(id uint, req *UpdateUserReq) (*entity.User, error) {
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.TelegramID != nil {
		updates["telegram_id"] = *req.TelegramID
	}
	if req.CityID != nil {
		updates["city_id"] = *req.CityID
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to update user")
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, apperr.BadRequest("no valid fields to update")
	}

	if err := s.Repo.Update(id, updates); err != nil {
		s.log.Error("user update failed", "userId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to update user")
	}

	s.log.Info("user updated", "userId", id)
	return s.FindByID(id)
}

func (s *UserService) Delete(id uint) (*entity.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(id); err != nil {
		s.log.Error("user deletion failed", "userId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to delete user")
	}
	s.log.Info("user deleted", "userId", id)
	return user, nil
}
