package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma separação. No máximo uma separação "active" por usuário.
const (
	SeparationStatusActive    = "active"
	SeparationStatusCompleted = "completed"
)

// Separation representa um trabalho de separação de pedidos (um dia/região).
type Separation struct {
	ID          string
	UserID      string
	Status      string // active, completed
	FileName    string // planilha de origem do upload
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// SeparationItem uma linha de material dentro de uma separação.
type SeparationItem struct {
	ID           string
	SeparationID string
	Codigo       string // código do material
	Material     string // descrição
	TipoSepar    string // tipo de separação informado na planilha (FRIOS, SECOS, ...)
	CreatedAt    time.Time
}

// SeparationQuantity quantidade de um material alocada a uma loja.
// Só existem linhas com quantidade > 0; zerar uma alocação remove a linha.
type SeparationQuantity struct {
	ItemID     string
	LojaCodigo string
	Quantidade decimal.Decimal
	UpdatedAt  time.Time
}
