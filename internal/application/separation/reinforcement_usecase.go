package separation

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// ReinforcementUseCase aplica um reforço: planilha suplementar cujas quantidades
// são SOMADAS às alocações existentes da separação ativa. Materiais ausentes
// viram itens novos.
type ReinforcementUseCase struct {
	txRunner TxRunner
	sepRepo  repository.SeparationRepository
	parser   OrderSheetParser
	activity *audit.ActivityLogger
}

// NewReinforcementUseCase constrói o caso de uso de reforço.
func NewReinforcementUseCase(
	txRunner TxRunner,
	sepRepo repository.SeparationRepository,
	parser OrderSheetParser,
	activity *audit.ActivityLogger,
) *ReinforcementUseCase {
	return &ReinforcementUseCase{txRunner: txRunner, sepRepo: sepRepo, parser: parser, activity: activity}
}

// Apply interpreta a planilha de reforço e soma as quantidades sobre a separação ativa.
func (uc *ReinforcementUseCase) Apply(ctx context.Context, userID, fileName string, file io.Reader) error {
	sep, err := uc.sepRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if sep == nil {
		return domain.ErrNoActiveSeparation
	}

	rows, err := uc.parser.Parse(file)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		_ repository.SeparationRepository,
		itemRepo repository.SeparationItemRepository,
		qtyRepo repository.QuantityRepository,
		_ repository.MediaRepository,
	) error {
		for _, row := range rows {
			codigo := normalize.Codigo(row.Codigo)
			if codigo == "" {
				continue
			}
			item, err := itemRepo.GetByCodigo(sep.ID, codigo)
			if err != nil {
				return err
			}
			if item == nil {
				item = &entity.SeparationItem{
					ID:           uuid.New().String(),
					SeparationID: sep.ID,
					Codigo:       codigo,
					Material:     row.Material,
					TipoSepar:    row.TipoSepar,
					CreatedAt:    now,
				}
				if err := itemRepo.CreateBatch([]*entity.SeparationItem{item}); err != nil {
					return err
				}
			}
			existing, err := qtyRepo.ListByItem(item.ID)
			if err != nil {
				return err
			}
			atual := make(map[string]*entity.SeparationQuantity, len(existing))
			for _, q := range existing {
				atual[q.LojaCodigo] = q
			}
			for loja, add := range row.Quantidades {
				if !add.IsPositive() {
					continue
				}
				loja = normalize.Codigo(loja)
				nova := add
				if q, ok := atual[loja]; ok {
					nova = q.Quantidade.Add(add)
				}
				if err := qtyRepo.Upsert(&entity.SeparationQuantity{
					ItemID:     item.ID,
					LojaCodigo: loja,
					Quantidade: nova,
					UpdatedAt:  now,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.activity.Record(userID, audit.ActionReforco, map[string]any{
		"separation_id": sep.ID,
		"file_name":     fileName,
		"rows":          len(rows),
	})
	return nil
}
