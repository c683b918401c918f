package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User representa um operador do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em texto plano após persistir
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
