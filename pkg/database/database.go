package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ConnectDB opens the connection and panics on failure; services cannot
// run without their primary store.
func ConnectDB(cfg *Config, log *zap.Logger) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatal("failed to connect database",
			zap.String("host", cfg.Host),
			zap.String("name", cfg.Name),
			zap.Error(err),
		)
	}
	log.Info("database connected", zap.String("name", cfg.Name))
	return db
}

// Open is the non-fatal variant, used for secondary stores that the
// service can live without.
func Open(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
}

func CloseDB(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get sql.DB for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}
}
