package repository

import "github.com/globaltours/invoice-api/internal/domain/entity"

// UserRepository is the persistence port for operator accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
