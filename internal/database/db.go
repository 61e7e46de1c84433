package database

import (
	"sync"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/database/model"
	"llm-quiz/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var (
	db *gorm.DB
	mu sync.Mutex
)

// connect opens the DB, applies pool configuration and registers read
// replicas when configured.
func connect() (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(config.Cfg.Dns), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if replicas := config.Cfg.Database.Replicas; len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, mysql.Open(dsn))
		}
		if err := conn.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
		})); err != nil {
			return nil, err
		}
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(config.Cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Cfg.Database.MaxOpenConns)
	lifetime := time.Duration(config.Cfg.Database.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return conn, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed.
func ensureConnection() error {
	mu.Lock()
	defer mu.Unlock()

	if db == nil {
		conn, err := connect()
		if err != nil {
			logger.Error(err, "database: failed to connect")
			return err
		}
		db = conn
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error(err, "database: failed to get underlying connection")
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		conn, err := connect()
		if err != nil {
			logger.Error(err, "database: reconnect failed")
			return err
		}
		db = conn
	}
	return nil
}

// GetDB returns a healthy *gorm.DB, attempting reconnect if necessary.
func GetDB() (*gorm.DB, error) {
	if err := ensureConnection(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema for all models.
func Migrate() error {
	conn, err := GetDB()
	if err != nil {
		return err
	}
	return conn.AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.Chunk{},
		&model.Question{},
		&model.Room{},
		&model.RoomQuestion{},
		&model.RoomAnswer{},
		&model.Score{},
	)
}
