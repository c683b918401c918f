package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// RecoveryCodeRepository porto de persistência para códigos de recuperação de senha.
type RecoveryCodeRepository interface {
	Create(code *entity.RecoveryCode) error
	// FindValid devolve o código não usado e não expirado do usuário, ou nil.
	FindValid(userID, code string) (*entity.RecoveryCode, error)
	MarkUsed(id string) error
}
