package database

import (
	"fmt"
	"sync"

	"collabboard/configs"
	"collabboard/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

func GetDB(config *configs.Config) *gorm.DB {
	once.Do(func() {
		initialize(config)
	})
	return db
}

func initialize(config *configs.Config) {
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		config.Viper.GetString("database.host"),
		config.Viper.GetString("database.user"),
		config.Viper.GetString("database.password"),
		config.Viper.GetString("database.name"),
		config.Viper.GetInt("database.port"),
		config.Viper.GetString("database.ssl_mode"),
		config.Viper.GetString("database.timezone"),
	)
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	Migrate(db)
}

// Migrate creates or updates the schema for every model. Also used by
// tests against an in-memory database.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Whiteboard{},
		&models.DrawingElement{},
		&models.WhiteboardCollaborator{},
		&models.Tag{},
		&models.WhiteboardTag{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
		return
	}
	logrus.Info("Database migrated successfully")
}
