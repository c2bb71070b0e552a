package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/legatepro/legatepro/internal/auth/domain"
	"github.com/legatepro/legatepro/internal/auth/password"
	"github.com/legatepro/legatepro/internal/config"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	"gorm.io/gorm"
)

// EnsureBootstrapOwner creates the configured owner account and its
// workspace settings row on first startup. A blank bootstrap email
// disables seeding.
func EnsureBootstrapOwner(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapOwnerEmail))
	if email == "" {
		return nil
	}
	if len(cfg.BootstrapOwnerPassword) < 8 {
		return errors.New("bootstrap owner password must be at least 8 characters")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.Where("email = ?", email).First(&user).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hashed, err := password.Hash(cfg.BootstrapOwnerPassword)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			user = authdomain.User{
				ID:           node.Generate(),
				Email:        email,
				PasswordHash: hashed,
				Name:         "Owner",
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}

		var settings workspacedomain.Settings
		err = tx.Where("owner_id = ?", user.ID).First(&settings).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		settings = workspacedomain.Settings{
			OwnerID:                user.ID,
			DefaultCurrency:        workspacedomain.DefaultCurrency,
			DefaultHourlyRateCents: workspacedomain.DefaultHourlyRateCents,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		return tx.Create(&settings).Error
	})
}
