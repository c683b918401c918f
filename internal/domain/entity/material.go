package entity

import "time"

// Material representa um item do cadastro de materiais.
// DescricaoNormalizada guarda a descrição sem acentos/maiúsculas para casar
// linhas de planilhas que chegam com grafias diferentes do mesmo item.
type Material struct {
	ID                   string
	Codigo               string
	Descricao            string
	DescricaoNormalizada string
	Categoria            string // FRIOS, SECOS, HORTIFRUTI, ...
	UnidadeMedida        string // KG, CX, UN
	Ativo                bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
