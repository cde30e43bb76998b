package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

// SeedAdmin creates the first admin account from ADMIN_PHONE/ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB) error {
	phone := getEnv("ADMIN_PHONE", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if phone == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_PHONE/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("phone = ?", phone).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", phone)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Phone:    phone,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}
