package repository

import (
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Create(menu *entity.Menu) error {
	return r.DB.Create(menu).Error
}

func (r *MenuRepository) FindByID(id uint) (*entity.Menu, error) {
	var menu entity.Menu
	if err := r.DB.First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) FindByRestaurant(restaurantID uint) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.Where("restaurant_id = ?", restaurantID).Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Menu{}).Where("id = ?", id).Updates(updates).Error
}

// CountOrderItems tells whether any order line still references the menu
// item; such items must not be deleted.
func (r *MenuRepository) CountOrderItems(menuID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.OrderItem{}).Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Menu{}, id).Error
}
