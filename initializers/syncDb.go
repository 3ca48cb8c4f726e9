package initializers

import (
	"log"

	"github.com/samvriksha/samvriksha-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Variant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
