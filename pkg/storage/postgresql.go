package storage

import (
	"fmt"
	"log/slog"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/musec/clowder/pkg/config"
	"github.com/musec/clowder/pkg/model"
)

// NewDatabase opens the Postgres database and migrates the schema.
//
// TranslateError lets repositories detect unique-constraint violations as
// [gorm.ErrDuplicatedKey] instead of driver-specific error codes.
func NewDatabase(c config.Postgresql, logger *slog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger:         slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Email{},
		&model.GithubAccount{},
		&model.Role{},

		&model.Architecture{},
		&model.Microarchitecture{},
		&model.Processor{},
		&model.Machine{},
		&model.Disk{},
		&model.Nic{},

		&model.Reservation{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
