package cadastro

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// UseCase cadastro de lojas e materiais: CRUD e importação em lote por planilha.
type UseCase struct {
	lojaRepo     repository.LojaRepository
	materialRepo repository.MaterialRepository
	parser       SheetParser
	activity     *audit.ActivityLogger
}

// NewUseCase constrói o caso de uso de cadastro.
func NewUseCase(
	lojaRepo repository.LojaRepository,
	materialRepo repository.MaterialRepository,
	parser SheetParser,
	activity *audit.ActivityLogger,
) *UseCase {
	return &UseCase{lojaRepo: lojaRepo, materialRepo: materialRepo, parser: parser, activity: activity}
}

// CreateLoja cria uma loja. Código duplicado devolve ErrDuplicate.
func (uc *UseCase) CreateLoja(in dto.CreateLojaRequest) (*dto.LojaResponse, error) {
	codigo := normalize.Codigo(in.Codigo)
	if codigo == "" || in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loja := &entity.Loja{
		ID:        uuid.New().String(),
		Codigo:    codigo,
		Nome:      in.Nome,
		Zona:      in.Zona,
		Ativa:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.lojaRepo.Create(loja); err != nil {
		return nil, err
	}
	return toLojaResponse(loja), nil
}

// ListLojas lista as lojas cadastradas.
func (uc *UseCase) ListLojas(page dto.PageRequest) ([]*dto.LojaResponse, error) {
	page.DefaultPage()
	lojas, err := uc.lojaRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LojaResponse, 0, len(lojas))
	for _, l := range lojas {
		out = append(out, toLojaResponse(l))
	}
	return out, nil
}

// GetLoja busca uma loja pelo código.
func (uc *UseCase) GetLoja(codigo string) (*dto.LojaResponse, error) {
	loja, err := uc.lojaRepo.GetByCodigo(normalize.Codigo(codigo))
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrNotFound
	}
	return toLojaResponse(loja), nil
}

// DeleteLoja remove uma loja do cadastro.
func (uc *UseCase) DeleteLoja(codigo string) error {
	return uc.lojaRepo.Delete(normalize.Codigo(codigo))
}

// ImportLojas importa lojas de uma planilha (upsert por código).
func (uc *UseCase) ImportLojas(userID string, file io.Reader) (*dto.ImportResultResponse, error) {
	lojas, err := uc.parser.ParseLojas(file)
	if err != nil {
		return nil, err
	}
	result := &dto.ImportResultResponse{}
	now := time.Now()
	valid := make([]*entity.Loja, 0, len(lojas))
	for _, l := range lojas {
		l.Codigo = normalize.Codigo(l.Codigo)
		if l.Codigo == "" || l.Nome == "" {
			result.Skipped++
			continue
		}
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.Ativa = true
		l.CreatedAt = now
		l.UpdatedAt = now
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.lojaRepo.UpsertBatch(valid); err != nil {
		return nil, err
	}
	result.Imported = len(valid)
	uc.activity.Record(userID, audit.ActionImport, map[string]any{
		"tipo":     "lojas",
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	return result, nil
}

// CreateMaterial cria um material; a descrição normalizada é derivada aqui.
func (uc *UseCase) CreateMaterial(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	codigo := normalize.Codigo(in.Codigo)
	if codigo == "" || in.Descricao == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	mat := &entity.Material{
		ID:                   uuid.New().String(),
		Codigo:               codigo,
		Descricao:            in.Descricao,
		DescricaoNormalizada: normalize.Material(in.Descricao),
		Categoria:            in.Categoria,
		UnidadeMedida:        in.UnidadeMedida,
		Ativo:                true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.materialRepo.Create(mat); err != nil {
		return nil, err
	}
	return toMaterialResponse(mat), nil
}

// ListMateriais lista os materiais cadastrados.
func (uc *UseCase) ListMateriais(page dto.PageRequest) ([]*dto.MaterialResponse, error) {
	page.DefaultPage()
	mats, err := uc.materialRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(mats))
	for _, m := range mats {
		out = append(out, toMaterialResponse(m))
	}
	return out, nil
}

// GetMaterial busca um material pelo código.
func (uc *UseCase) GetMaterial(codigo string) (*dto.MaterialResponse, error) {
	mat, err := uc.materialRepo.GetByCodigo(normalize.Codigo(codigo))
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(mat), nil
}

// ImportMateriais importa materiais de uma planilha (upsert por código).
func (uc *UseCase) ImportMateriais(userID string, file io.Reader) (*dto.ImportResultResponse, error) {
	mats, err := uc.parser.ParseMateriais(file)
	if err != nil {
		return nil, err
	}
	result := &dto.ImportResultResponse{}
	now := time.Now()
	valid := make([]*entity.Material, 0, len(mats))
	for _, m := range mats {
		m.Codigo = normalize.Codigo(m.Codigo)
		if m.Codigo == "" || m.Descricao == "" {
			result.Skipped++
			continue
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		m.DescricaoNormalizada = normalize.Material(m.Descricao)
		m.Ativo = true
		m.CreatedAt = now
		m.UpdatedAt = now
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.materialRepo.UpsertBatch(valid); err != nil {
		return nil, err
	}
	result.Imported = len(valid)
	uc.activity.Record(userID, audit.ActionImport, map[string]any{
		"tipo":     "materiais",
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	return result, nil
}

func toLojaResponse(l *entity.Loja) *dto.LojaResponse {
	return &dto.LojaResponse{
		ID:        l.ID,
		Codigo:    l.Codigo,
		Nome:      l.Nome,
		Zona:      l.Zona,
		Ativa:     l.Ativa,
		UpdatedAt: l.UpdatedAt,
	}
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:            m.ID,
		Codigo:        m.Codigo,
		Descricao:     m.Descricao,
		Categoria:     m.Categoria,
		UnidadeMedida: m.UnidadeMedida,
		Ativo:         m.Ativo,
		UpdatedAt:     m.UpdatedAt,
	}
}
