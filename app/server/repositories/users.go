package repositories

import (
	"context"
	"fmt"
	"library-articles/app/server/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	// Resolve finds the user by email, creating it on first sight and
	// refreshing uid and display name when the identity provider changed them.
	Resolve(ctx context.Context, uid, email, name string) (*models.User, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Resolve(ctx context.Context, uid, email, name string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where(models.User{Email: email}).
		Attrs(models.User{UID: uid, DisplayName: name}).
		FirstOrCreate(&user).Error
	if isUniqueViolation(err) {
		// lost a creation race, the other request's row is as good
		err = r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	updates := map[string]any{}
	if uid != "" && user.UID != uid {
		updates["uid"] = uid
	}
	if name != "" && user.DisplayName != name {
		updates["display_name"] = name
	}
	if len(updates) > 0 {
		if err = r.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("refresh user: %w", err)
		}
		if v, ok := updates["uid"]; ok {
			user.UID = v.(string)
		}
		if v, ok := updates["display_name"]; ok {
			user.DisplayName = v.(string)
		}
	}

	return &user, nil
}
