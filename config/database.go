package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"portfolio-blog-api/models"
)

// InitDB opens the postgres connection and runs migrations. TranslateError
// must stay on: the tag resolver and the slug conflict path both rely on
// unique violations surfacing as gorm.ErrDuplicatedKey.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Type{},
		&models.Article{},
		&models.ArticleTag{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
