package repository

import (
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

type CityRepository struct {
	DB *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{DB: db}
}

func (r *CityRepository) Create(city *entity.City) error {
	return r.DB.Create(city).Error
}

func (r *CityRepository) FindByID(id uint) (*entity.City, error) {
	var city entity.City
	if err := r.DB.First(&city, id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) FindByIDWithRelations(id uint) (*entity.City, error) {
	var city entity.City
	if err := r.DB.Preload("Restaurants").Preload("Users").First(&city, id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) List() ([]entity.City, error) {
	var cities []entity.City
	err := r.DB.Find(&cities).Error
	return cities, err
}

func (r *CityRepository) CountRestaurants(cityID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).Where("city_id = ?", cityID).Count(&count).Error
	return count, err
}

func (r *CityRepository) CountUsers(cityID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("city_id = ?", cityID).Count(&count).Error
	return count, err
}

func (r *CityRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.City{}, id).Error
}
