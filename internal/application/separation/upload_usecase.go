package separation

import (
	"context"
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

// UploadUseCase cria uma nova separação ativa a partir de uma planilha de pedidos:
// uma linha por material, uma coluna por loja. Tudo dentro de uma transação.
type UploadUseCase struct {
	txRunner     TxRunner
	sepRepo      repository.SeparationRepository
	materialRepo repository.MaterialRepository
	parser       OrderSheetParser
	activity     *audit.ActivityLogger
}

// NewUploadUseCase constrói o caso de uso de upload.
func NewUploadUseCase(
	txRunner TxRunner,
	sepRepo repository.SeparationRepository,
	materialRepo repository.MaterialRepository,
	parser OrderSheetParser,
	activity *audit.ActivityLogger,
) *UploadUseCase {
	return &UploadUseCase{
		txRunner:     txRunner,
		sepRepo:      sepRepo,
		materialRepo: materialRepo,
		parser:       parser,
		activity:     activity,
	}
}

// Upload valida que o usuário não tem separação ativa, interpreta a planilha e
// persiste separação + itens + quantidades (> 0) atomicamente.
func (uc *UploadUseCase) Upload(ctx context.Context, userID, fileName string, file io.Reader) (*dto.SeparationResponse, error) {
	active, err := uc.sepRepo.GetActive(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrSeparationActive
	}

	rows, err := uc.parser.Parse(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sep := &entity.Separation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    entity.SeparationStatusActive,
		FileName:  fileName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]*entity.SeparationItem, 0, len(rows))
	var quantities []*entity.SeparationQuantity
	for _, row := range rows {
		codigo := normalize.Codigo(row.Codigo)
		if codigo == "" {
			// Planilhas antigas trazem só a descrição; tenta casar no cadastro
			mat, err := uc.materialRepo.FindByDescricaoNormalizada(normalize.Material(row.Material))
			if err != nil {
				return nil, err
			}
			if mat == nil {
				continue
			}
			codigo = mat.Codigo
		}
		item := &entity.SeparationItem{
			ID:           uuid.New().String(),
			SeparationID: sep.ID,
			Codigo:       codigo,
			Material:     row.Material,
			TipoSepar:    row.TipoSepar,
			CreatedAt:    now,
		}
		items = append(items, item)
		for loja, q := range row.Quantidades {
			if !q.IsPositive() {
				continue // quantidade zero não gera linha
			}
			quantities = append(quantities, &entity.SeparationQuantity{
				ItemID:     item.ID,
				LojaCodigo: normalize.Codigo(loja),
				Quantidade: q,
				UpdatedAt:  now,
			})
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.Run(ctx, func(
		sepRepo repository.SeparationRepository,
		itemRepo repository.SeparationItemRepository,
		qtyRepo repository.QuantityRepository,
		_ repository.MediaRepository,
	) error {
		if err := sepRepo.Create(sep); err != nil {
			return err
		}
		if err := itemRepo.CreateBatch(items); err != nil {
			return err
		}
		return qtyRepo.UpsertBatch(quantities)
	})
	if err != nil {
		return nil, err
	}

	uc.activity.Record(userID, audit.ActionUpload, map[string]any{
		"separation_id": sep.ID,
		"file_name":     fileName,
		"items":         len(items),
	})
	return &dto.SeparationResponse{
		ID:        sep.ID,
		Status:    sep.Status,
		FileName:  sep.FileName,
		CreatedAt: sep.CreatedAt,
	}, nil
}
