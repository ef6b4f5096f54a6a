package database

import (
	"chaos_backend/internal/config"
	"chaos_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the connection and optionally runs schema migrations.
// Release deployments skip migration unless started with -migrate.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Organisation{},
		&model.OrganisationMember{},
		&model.Campaign{},
		&model.CampaignRole{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Application{},
		&model.ApplicationRole{},
		&model.Answer{},
		&model.Rating{},
		&model.InterviewSlot{},
		&model.InterviewBooking{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
