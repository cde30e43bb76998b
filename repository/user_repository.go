package repository

import (
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

// UserRepository only talks to the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(phone string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByPhone(phone string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("phone = ?", phone).Count(&count).Error
	return count, err
}

// FindByTelegramID returns nil without an error when nothing matches; the
// bot polls this endpoint for users that may not exist yet.
func (r *UserRepository) FindByTelegramID(telegramID string) (*entity.User, error) {
	var users []entity.User
	if err := r.DB.Where("telegram_id = ?", telegramID).Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// List filters by role and/or telegram id with OR semantics, matching how
// the admin panel and the bot query users.
func (r *UserRepository) List(role, telegramID string) ([]entity.User, error) {
	q := r.DB.Model(&entity.User{})
	switch {
	case role != "" && telegramID != "":
		q = q.Where("role = ? OR telegram_id = ?", role, telegramID)
	case role != "":
		q = q.Where("role = ?", role)
	case telegramID != "":
		q = q.Where("telegram_id = ?", telegramID)
	}

	var users []entity.User
	err := q.Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(role entity.UserRole) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.Where("role = ?", role).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.User{}, id).Error
}
