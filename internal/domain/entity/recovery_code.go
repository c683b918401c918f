package entity

import "time"

// RecoveryCode código de 6 dígitos enviado por e-mail para recuperação de senha.
type RecoveryCode struct {
	ID        string
	UserID    string
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
