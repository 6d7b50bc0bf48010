package inits

import (
	"fmt"
	"library-articles/app/server/models"
	"time"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const dbConnectAttempts = 5

func DB(conn string, l *zap.Logger) (db *gorm.DB, err error) {
	// connect, the database may still be starting
	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	for attempt := 1; ; attempt++ {
		if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{TranslateError: true}); err == nil {
			break
		}
		if attempt >= dbConnectAttempts {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		wait := b.Duration()
		l.Warn("database not ready, retrying", zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
		time.Sleep(wait)
	}

	// migrate
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// seed
	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// done
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Loan{},
		&models.Article{},
		&models.TechDetail{},
		&models.ReviewScore{},
	)
}

func initData(db *gorm.DB) (err error) {
	// count existing rows
	var counter int64

	// tech detail pages
	if err = db.Model(&models.TechDetail{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get tech detail count: %w", err)
	} else if counter == 0 {
		if err = db.Create(seedTechDetails()).Error; err != nil {
			return fmt.Errorf("failed to create initial tech details: %w", err)
		}
	}

	// either present already or seeded now
	return nil
}
