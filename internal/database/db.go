package database

import (
	"errors"
	"fmt"
	"time"

	"vendor-tracker/internal/config"
	"vendor-tracker/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// legacyChainIndexSQL drops the old COALESCE expression index. It treated NULL
// slots as equal, so nulling a deleted vendor or client out of a chain could fail.
const legacyChainIndexSQL = `DROP INDEX IF EXISTS idx_submission_chain`

func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func Init(cfg *config.Config) error {
	var err error

	for i := 1; i <= cfg.DBMaxAttempts; i++ {
		log.Info().Str("driver", cfg.DBDriver).Int("attempt", i).Int("max_attempts", cfg.DBMaxAttempts).Msg("connecting to database")

		DB, err = Open(cfg.DBDriver, cfg.DBDSN)
		if err == nil {
			log.Info().Msg("connected to database")
			break
		}

		log.Warn().Err(err).Msg("database connection failed")
		if i < cfg.DBMaxAttempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", cfg.DBMaxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	return SeedAdmin(DB, cfg.AdminUsername, cfg.AdminPassword)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AuditLog{},
		&models.Vendor{},
		&models.VendorContact{},
		&models.VendorAddress{},
		&models.Client{},
		&models.ClientAddress{},
		&models.ClientVendorLink{},
		&models.Skill{},
		&models.Visa{},
		&models.Marketer{},
		&models.Recruiter{},
		&models.Consultant{},
		&models.ConsultantAddress{},
		&models.ConsultantEducation{},
		&models.Submission{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(legacyChainIndexSQL).Error; err != nil {
		return fmt.Errorf("drop legacy submission chain index: %w", err)
	}
	return nil
}

// SeedAdmin creates the first admin account; it does nothing once any admin exists.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if username == "" || password == "" {
		return errors.New("admin credentials are empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("username", username).Msg("created default admin user")
	return nil
}
