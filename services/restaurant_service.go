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

type RestaurantService struct {
	Repo     *repository.RestaurantRepository
	CityRepo *repository.CityRepository
	log      *slog.Logger
}

func NewRestaurantService(repo *repository.RestaurantRepository, cityRepo *repository.CityRepository, log *slog.Logger) *RestaurantService {
	return &RestaurantService{Repo: repo, CityRepo: cityRepo, log: log}
}

type CreateRestaurantReq struct {
	Name     string                    `json:"name" binding:"required"`
	Phone    string                    `json:"phone" binding:"required"`
	Password string                    `json:"password"`
	Image    string                    `json:"image" binding:"required"`
	Address  string                    `json:"address"`
	Category entity.RestaurantCategory `json:"category" binding:"required,oneof=fast_food milliy_taom pizza burger"`
	CityID   uint                      `json:"cityId" binding:"required"`
}

type UpdateRestaurantReq struct {
	Name     *string                    `json:"name"`
	Phone    *string                    `json:"phone"`
	Password *string                    `json:"password"`
	Image    *string                    `json:"image"`
	Address  *string                    `json:"address"`
	Category *entity.RestaurantCategory `json:"category" binding:"omitempty,oneof=fast_food milliy_taom pizza burger"`
	CityID   *uint                      `json:"cityId"`
}

func (s *RestaurantService) Create(req *CreateRestaurantReq) (*entity.Restaurant, error) {
	s.log.Info("creating restaurant", "name", req.Name)

	if err := s.validateUniquePhone(req.Phone, 0); err != nil {
		return nil, err
	}
	if err := s.validateCityExists(req.CityID); err != nil {
		return nil, err
	}

	rest := entity.Restaurant{
		Name:     req.Name,
		Phone:    req.Phone,
		Image:    req.Image,
		Address:  req.Address,
		Category: req.Category,
		CityID:   req.CityID,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to create restaurant")
		}
		rest.Password = string(hash)
	}

	if err := s.Repo.Create(&rest); err != nil {
		s.log.Error("restaurant creation failed", "error", err)
		return nil, apperr.Wrap(err, "failed to create restaurant")
	}

	s.log.Info("restaurant created", "restaurantId", rest.ID)
	return s.FindOne(rest.ID)
}

func (s *RestaurantService) FindAll(search string, cityID uint) ([]entity.Restaurant, error) {
	rests, err := s.Repo.List(search, cityID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to fetch restaurants")
	}
	s.log.Info("restaurants listed", "count", len(rests))
	return rests, nil
}

func (s *RestaurantService) FindOne(id uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to fetch restaurant")
	}
	return rest, nil
}

func (s *RestaurantService) Update(id uint, req *UpdateRestaurantReq) (*entity.Restaurant, error) {
	if _, err := s.FindOne(id); err != nil {
		return nil, err
	}
	if req.Phone != nil {
		if err := s.validateUniquePhone(*req.Phone, id); err != nil {
			return nil, err
		}
	}
	if req.CityID != nil {
		if err := s.validateCityExists(*req.CityID); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.CityID != nil {
		updates["city_id"] = *req.CityID
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to update restaurant")
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, apperr.BadRequest("no valid fields to update")
	}

	if err := s.Repo.Update(id, updates); err != nil {
		s.log.Error("restaurant update failed", "restaurantId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to update restaurant")
	}

	s.log.Info("restaurant updated", "restaurantId", id)
	return s.FindOne(id)
}

func (s *RestaurantService) Remove(id uint) error {
	if _, err := s.FindOne(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		s.log.Error("restaurant deletion failed", "restaurantId", id, "error", err)
		return apperr.Wrap(err, "failed to delete restaurant")
	}
	s.log.Info("restaurant deleted", "restaurantId", id)
	return nil
}

func (s *RestaurantService) validateUniquePhone(phone string, excludeID uint) error {
	count, err := s.Repo.CountByPhone(phone, excludeID)
	if err != nil {
		return apperr.Wrap(err, "failed to validate phone")
	}
	if count > 0 {
		return apperr.Conflict("phone number already exists")
	}
	return nil
}

func (s *RestaurantService) validateCityExists(cityID uint) error {
	if _, err := s.CityRepo.FindByID(cityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("city not found")
		}
		return apperr.Wrap(err, "failed to validate city")
	}
	return nil
}
