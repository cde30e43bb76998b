package services

import (
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

type CityService struct {
	Repo *repository.CityRepository
	log  *slog.Logger
}

func NewCityService(repo *repository.CityRepository, log *slog.Logger) *CityService {
	return &CityService{Repo: repo, log: log}
}

type CreateCityReq struct {
	Name string `json:"name" binding:"required"`
}

func (s *CityService) Create(req *CreateCityReq) (*entity.City, error) {
	city := entity.City{Name: req.Name}
	if err := s.Repo.Create(&city); err != nil {
		return nil, apperr.Wrap(err, "failed to create city")
	}
	s.log.Info("city created", "cityId", city.ID, "name", city.Name)
	return &city, nil
}

func (s *CityService) FindAll() ([]entity.City, error) {
	cities, err := s.Repo.List()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to fetch cities")
	}
	s.log.Info("cities listed", "count", len(cities))
	return cities, nil
}

func (s *CityService) FindOne(id uint, includeRelations bool) (*entity.City, error) {
	var (
		city *entity.City
		err  error
	)
	if includeRelations {
		city, err = s.Repo.FindByIDWithRelations(id)
	} else {
		city, err = s.Repo.FindByID(id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("city with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to fetch city")
	}
	return city, nil
}

// Remove deletes a city only when nothing references it; otherwise the
// caller gets a Conflict naming the related kinds.
func (s *CityService) Remove(id uint) (*entity.City, error) {
	city, err := s.FindOne(id, false)
	if err != nil {
		return nil, err
	}

	var relationTypes []string
	restaurants, err := s.Repo.CountRestaurants(id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to delete city")
	}
	if restaurants > 0 {
		relationTypes = append(relationTypes, "restaurants")
	}
	users, err := s.Repo.CountUsers(id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to delete city")
	}
	if users > 0 {
		relationTypes = append(relationTypes, "users")
	}
	if len(relationTypes) > 0 {
		return nil, apperr.Conflict("cannot delete city with id %d because it has related %s", id, strings.Join(relationTypes, ", "))
	}

	if err := s.Repo.Delete(id); err != nil {
		s.log.Error("city deletion failed", "cityId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to delete city")
	}
	s.log.Info("city deleted", "cityId", id)
	return city, nil
}
