package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
}
