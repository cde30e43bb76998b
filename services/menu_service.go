package services

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

type MenuService struct {
	Repo     *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
	log      *slog.Logger
}

func NewMenuService(repo *repository.MenuRepository, restRepo *repository.RestaurantRepository, log *slog.Logger) *MenuService {
	return &MenuService{Repo: repo, RestRepo: restRepo, log: log}
}

type CreateMenuReq struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Image        string          `json:"image" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	RestaurantID uint            `json:"restaurantId" binding:"required"`
}

type UpdateMenuReq struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
}

func (s *MenuService) Create(req *CreateMenuReq) (*entity.Menu, error) {
	s.log.Info("creating menu item", "name", req.Name, "restaurantId", req.RestaurantID)

	if req.Price.IsNegative() {
		return nil, apperr.BadRequest("price must not be negative")
	}

	ok, err := s.RestRepo.Exists(req.RestaurantID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to create menu item")
	}
	if !ok {
		return nil, apperr.NotFound("restaurant with id %d not found", req.RestaurantID)
	}

	menu := entity.Menu{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Price:        req.Price,
		RestaurantID: req.RestaurantID,
	}
	if err := s.Repo.Create(&menu); err != nil {
		s.log.Error("menu creation failed", "error", err)
		return nil, apperr.Wrap(err, "failed to create menu item")
	}

	s.log.Info("menu item created", "menuId", menu.ID)
	return &menu, nil
}

func (s *MenuService) FindAllByRestaurant(restaurantID uint) ([]entity.Menu, error) {
	menus, err := s.Repo.FindByRestaurant(restaurantID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to get menu for restaurant")
	}
	s.log.Info("menu listed", "restaurantId", restaurantID, "count", len(menus))
	return menus, nil
}

func (s *MenuService) FindOne(id uint) (*entity.Menu, error) {
	menu, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to fetch menu item")
	}
	return menu, nil
}

// Update changes a menu item's current fields. Order items keep the price
// snapshots they were created with.
func (s *MenuService) Update(id uint, req *UpdateMenuReq) (*entity.Menu, error) {
	if _, err := s.FindOne(id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.BadRequest("price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if len(updates) == 0 {
		return nil, apperr.BadRequest("no valid fields to update")
	}

	if err := s.Repo.Update(id, updates); err != nil {
		s.log.Error("menu update failed", "menuId", id, "error", err)
		return nil, apperr.Wrap(err, "failed to update menu item")
	}

	s.log.Info("menu item updated", "menuId", id)
	return s.FindOne(id)
}

// Remove refuses to delete a menu item that order lines still reference.
func (s *MenuService) Remove(id uint) error {
	if _, err := s.FindOne(id); err != nil {
		return err
	}

	count, err := s.Repo.CountOrderItems(id)
	if err != nil {
		return apperr.Wrap(err, "failed to delete menu item")
	}
	if count > 0 {
		return apperr.Conflict("cannot delete menu item with id %d because it is referenced by order items", id)
	}

	if err := s.Repo.Delete(id); err != nil {
		s.log.Error("menu deletion failed", "menuId", id, "error", err)
		return apperr.Wrap(err, "failed to delete menu item")
	}
	s.log.Info("menu item deleted", "menuId", id)
	return nil
}
