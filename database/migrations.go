package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"episolve/models"
)

func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.Service{},
		&models.Category{},
		&models.Post{},
		&models.TeamMember{},
		&models.Testimonial{},
		&models.Page{},
		&models.Media{},
		&models.Lead{},
		&models.Subscriber{},
		&models.Global{},
	)

	if err != nil {
		log.Error("migrations failed", zap.Error(err))
		return err
	}

	log.Info("migrations completed")
	return nil
}
