package dto

import "time"

// CreateLojaRequest body para POST /api/lojas.
type CreateLojaRequest struct {
	Codigo string `json:"codigo" validate:"required,max=20"`
	Nome   string `json:"nome" validate:"required,max=200"`
	Zona   string `json:"zona" validate:"omitempty,max=100"`
}

// LojaResponse loja nas respostas.
type LojaResponse struct {
	ID        string    `json:"id"`
	Codigo    string    `json:"codigo"`
	Nome      string    `json:"nome"`
	Zona      string    `json:"zona,omitempty"`
	Ativa     bool      `json:"ativa"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMaterialRequest body para POST /api/materiais.
type CreateMaterialRequest struct {
	Codigo        string `json:"codigo" validate:"required,max=40"`
	Descricao     string `json:"descricao" validate:"required,max=300"`
	Categoria     string `json:"categoria" validate:"omitempty,max=100"`
	UnidadeMedida string `json:"unidade_medida" validate:"omitempty,oneof=KG CX UN"`
}

// MaterialResponse material nas respostas.
type MaterialResponse struct {
	ID            string    `json:"id"`
	Codigo        string    `json:"codigo"`
	Descricao     string    `json:"descricao"`
	Categoria     string    `json:"categoria,omitempty"`
	UnidadeMedida string    `json:"unidade_medida,omitempty"`
	Ativo         bool      `json:"ativo"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ImportResultResponse resultado de uma importação em lote por planilha.
type ImportResultResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
