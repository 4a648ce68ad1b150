package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Charlydk/Portal-GTR-sub000/models"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(&models.Analyst{}, &models.HHEEValidation{})
	if err != nil {
		return err
	}

	// Seed default responsable if not exists
	if err := seedDefaultResponsable(); err != nil {
		return err
	}

	return nil
}

func seedDefaultResponsable() error {
	var count int64
	DB.Model(&models.Analyst{}).Where("email = ?", "admin@portal-gtr.local").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Analyst{
		Email:        "admin@portal-gtr.local",
		FirstName:    "Administrador",
		LastName:     "Portal",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleResponsable,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Println("Default responsable created (email: admin@portal-gtr.local, password: admin)")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
