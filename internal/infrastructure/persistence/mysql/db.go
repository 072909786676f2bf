package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javanauta/user-directory/internal/infrastructure/config"
)

// NewDB opens the MySQL connection, configures the pool and migrates the
// schema. SQL logging is enabled only in debug mode.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Surface duplicate-key violations as gorm.ErrDuplicatedKey so the
		// repository can translate them.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("database connection established")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return db, nil
}

// autoMigrate creates missing tables and columns. Production deployments
// should run versioned migrations instead.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
	)
}

// UserModel is the GORM mapping for the users table. The domain entity does
// not carry GORM tags; the repository converts between the two.
//
// There is no gorm.DeletedAt column on purpose: deletion in this system is
// permanent and immediate, and a deleted email must be free for re-use.
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null"`
	Name      string    `gorm:"size:100;not null"`
	Password  string    `gorm:"size:255;not null"` // bcrypt hash
	Role      string    `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (UserModel) TableName() string {
	return "users"
}
