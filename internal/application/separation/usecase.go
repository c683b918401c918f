package separation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// UseCase operações sobre a separação ativa do usuário: consulta, edição de
// alocações por loja e finalização.
type UseCase struct {
	txRunner TxRunner
	sepRepo  repository.SeparationRepository
	itemRepo repository.SeparationItemRepository
	qtyRepo  repository.QuantityRepository
	activity *audit.ActivityLogger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	txRunner TxRunner,
	sepRepo repository.SeparationRepository,
	itemRepo repository.SeparationItemRepository,
	qtyRepo repository.QuantityRepository,
	activity *audit.ActivityLogger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		sepRepo:  sepRepo,
		itemRepo: itemRepo,
		qtyRepo:  qtyRepo,
		activity: activity,
	}
}

// GetActive devolve o cabeçalho da separação ativa, ou ErrNoActiveSeparation.
func (uc *UseCase) GetActive(userID string) (*dto.SeparationResponse, error) {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	return toSeparationResponse(sep), nil
}

// Get devolve uma separação do usuário pelo ID (histórico incluído), ou ErrNotFound.
func (uc *UseCase) Get(userID, id string) (*dto.SeparationResponse, error) {
	sep, err := uc.sepRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if sep == nil {
		return nil, domain.ErrNotFound
	}
	return toSeparationResponse(sep), nil
}

// List lista as separações do usuário (ativas e concluídas).
func (uc *UseCase) List(userID string, page dto.PageRequest) ([]*dto.SeparationResponse, error) {
	page.DefaultPage()
	seps, err := uc.sepRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SeparationResponse, 0, len(seps))
	for _, s := range seps {
		out = append(out, toSeparationResponse(s))
	}
	return out, nil
}

// ListItems devolve os itens da separação ativa com as quantidades por loja.
func (uc *UseCase) ListItems(userID string) ([]*dto.SeparationItemResponse, error) {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListBySeparation(sep.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SeparationItemResponse, 0, len(items))
	for _, item := range items {
		qts, err := uc.qtyRepo.ListByItem(item.ID)
		if err != nil {
			return nil, err
		}
		m := make(map[string]decimal.Decimal, len(qts))
		for _, q := range qts {
			m[q.LojaCodigo] = q.Quantidade
		}
		out = append(out, &dto.SeparationItemResponse{
			ID:          item.ID,
			Codigo:      item.Codigo,
			Material:    item.Material,
			TipoSepar:   item.TipoSepar,
			Quantidades: m,
		})
	}
	return out, nil
}

// UpdateQuantity edita a alocação de uma loja em um item da separação ativa.
// Quantidade zero remove a linha; negativa é inválida.
func (uc *UseCase) UpdateQuantity(userID string, in dto.UpdateQuantityRequest) error {
	if in.Quantidade.IsNegative() {
		return domain.ErrInvalidInput
	}
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return err
	}
	item, err := uc.itemFromActive(sep.ID, in.ItemID)
	if err != nil {
		return err
	}
	loja := normalize.Codigo(in.LojaCodigo)
	if loja == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantidade.IsZero() {
		err = uc.qtyRepo.Delete(item.ID, loja)
	} else {
		err = uc.qtyRepo.Upsert(&entity.SeparationQuantity{
			ItemID:     item.ID,
			LojaCodigo: loja,
			Quantidade: in.Quantidade,
		})
	}
	if err != nil {
		return err
	}
	uc.activity.Record(userID, audit.ActionEditQty, map[string]any{
		"item_id":    item.ID,
		"loja":       loja,
		"quantidade": in.Quantidade.String(),
	})
	return nil
}

// Finalize conclui a separação ativa e remove os itens da análise de médias
// pertencentes a ela, atomicamente.
func (uc *UseCase) Finalize(ctx context.Context, userID string) error {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return err
	}
	err = uc.txRunner.Run(ctx, func(
		sepRepo repository.SeparationRepository,
		_ repository.SeparationItemRepository,
		_ repository.QuantityRepository,
		mediaRepo repository.MediaRepository,
	) error {
		if err := sepRepo.Complete(userID, sep.ID); err != nil {
			return err
		}
		return mediaRepo.DeleteAll(userID, sep.ID)
	})
	if err != nil {
		return err
	}
	uc.activity.Record(userID, audit.ActionFinalize, map[string]any{"separation_id": sep.ID})
	return nil
}

// activeSeparation carrega a separação ativa ou ErrNoActiveSeparation.
func (uc *UseCase) activeSeparation(userID string) (*entity.Separation, error) {
	sep, err := uc.sepRepo.GetActive(userID)
	if err != nil {
		return nil, err
	}
	if sep == nil {
		return nil, domain.ErrNoActiveSeparation
	}
	return sep, nil
}

// itemFromActive garante que o item pertence à separação informada.
func (uc *UseCase) itemFromActive(separationID, itemID string) (*entity.SeparationItem, error) {
	items, err := uc.itemRepo.ListBySeparation(separationID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func toSeparationResponse(s *entity.Separation) *dto.SeparationResponse {
	return &dto.SeparationResponse{
		ID:          s.ID,
		Status:      s.Status,
		FileName:    s.FileName,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
	}
}
