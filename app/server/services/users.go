package services

import (
	"context"
	"library-articles/app/server/auth"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
)

type UserService struct {
	store *repositories.Store
}

func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

// Resolve maps a verified identity onto its stored user, creating it on first use.
func (s *UserService) Resolve(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	return s.store.Users.Resolve(ctx, identity.UID, identity.Email, identity.Name)
}
