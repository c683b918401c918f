package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists  = errors.New("o e-mail já está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
	ErrConflict            = errors.New("conflito com o estado atual")
	ErrNoActiveSeparation  = errors.New("nenhuma separação ativa")
	ErrSeparationActive    = errors.New("já existe uma separação ativa para o usuário")
	ErrStatusAlreadyOK     = errors.New("o status do item já é OK")
	ErrNothingToUpdate     = errors.New("nenhuma loja com quantidade a cortar")
	ErrInvalidRecoveryCode = errors.New("código de recuperação inválido ou expirado")
)
