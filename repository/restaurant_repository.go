package repository

import (
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("City").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List filters by name substring and/or city, newest first.
func (r *RestaurantRepository) List(search string, cityID uint) ([]entity.Restaurant, error) {
	q := r.DB.Preload("City")
	if search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if cityID != 0 {
		q = q.Where("city_id = ?", cityID)
	}

	var rests []entity.Restaurant
	err := q.Order("created_at DESC").Find(&rests).Error
	return rests, err
}

// CountByPhone counts restaurants holding the phone, excluding one id so an
// update does not collide with itself.
func (r *RestaurantRepository) CountByPhone(phone string, excludeID uint) (int64, error) {
	q := r.DB.Model(&entity.Restaurant{}).Where("phone = ?", phone)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *RestaurantRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates).Error
}

func (r *RestaurantRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Restaurant{}, id).Error
}
