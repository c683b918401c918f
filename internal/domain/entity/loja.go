package entity

import "time"

// Loja representa uma loja/zona de destino das quantidades separadas.
type Loja struct {
	ID        string
	Codigo    string // código curto usado nas colunas da planilha (ex.: "SP01")
	Nome      string
	Zona      string // agrupamento logístico (CENTRO, INTERIOR, ...)
	Ativa     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
