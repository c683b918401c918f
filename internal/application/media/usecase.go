package media

import (
	"time"

	"github.com/google/uuid"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	dommedia "github.com/colhetron/separacao-api/internal/domain/media"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// UseCase análise de médias da separação ativa: inclusão em lote, recálculo a
// cada edição, force-OK e média customizada. O estoque atual de cada item é
// derivado somando as alocações por loja do material na separação ativa.
type UseCase struct {
	mediaRepo repository.MediaRepository
	sepRepo   repository.SeparationRepository
	qtyRepo   repository.QuantityRepository
	activity  *audit.ActivityLogger
}

// NewUseCase constrói o caso de uso da análise de médias.
func NewUseCase(
	mediaRepo repository.MediaRepository,
	sepRepo repository.SeparationRepository,
	qtyRepo repository.QuantityRepository,
	activity *audit.ActivityLogger,
) *UseCase {
	return &UseCase{mediaRepo: mediaRepo, sepRepo: sepRepo, qtyRepo: qtyRepo, activity: activity}
}

// List devolve os itens da análise com estoque e status atualizados.
// O recálculo é idempotente: entradas iguais produzem campos persistidos iguais.
func (uc *UseCase) List(userID string) ([]*dto.MediaItemResponse, error) {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.mediaRepo.List(userID, sep.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MediaItemResponse, 0, len(items))
	for _, item := range items {
		if err := uc.refresh(sep.ID, item); err != nil {
			return nil, err
		}
		out = append(out, toMediaResponse(item))
	}
	return out, nil
}

// Add inclui linhas coladas pelo operador, classificando cada uma contra o
// estoque derivado da separação ativa. Um material já presente na análise é
// atualizado com as quantidades coladas, não duplicado.
func (uc *UseCase) Add(userID string, in dto.AddMediaItemsRequest) ([]*dto.MediaItemResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var items []*entity.MediaAnalysisItem
	var updates []*entity.MediaAnalysisItem
	var creates []*entity.MediaAnalysisItem
	seen := map[string]*entity.MediaAnalysisItem{} // codigo -> item do lote
	for _, row := range in.Items {
		codigo := normalize.Codigo(row.Codigo)
		if codigo == "" || row.Material == "" {
			return nil, domain.ErrInvalidInput
		}
		estoque, err := uc.qtyRepo.SumByMaterial(sep.ID, codigo)
		if err != nil {
			return nil, err
		}
		result, err := dommedia.Classify(dommedia.Input{
			EstoqueAtual:     estoque,
			QuantidadeCaixas: row.QuantidadeCaixas,
			QuantidadeKg:     row.QuantidadeKg,
			MediaSistema:     row.MediaSistema,
		})
		if err != nil {
			return nil, err
		}
		item, ok := seen[codigo]
		if !ok {
			item, err = uc.mediaRepo.GetByCodigo(userID, sep.ID, codigo)
			if err != nil {
				return nil, err
			}
			if item != nil {
				updates = append(updates, item)
			} else {
				item = &entity.MediaAnalysisItem{
					ID:           uuid.New().String(),
					UserID:       userID,
					SeparationID: sep.ID,
					Codigo:       codigo,
					CreatedAt:    now,
				}
				creates = append(creates, item)
			}
			seen[codigo] = item
			items = append(items, item)
		}
		item.Material = row.Material
		item.QuantidadeKg = row.QuantidadeKg
		item.QuantidadeCaixas = row.QuantidadeCaixas
		item.MediaSistema = row.MediaSistema
		item.EstoqueAtual = estoque
		item.DiferencaCaixas = result.DiferencaCaixas
		item.MediaReal = result.MediaReal
		item.Status = result.Status
		item.ForcedStatus = false
		item.ForcedReason = ""
		item.ForcedBy = ""
		item.ForcedAt = nil
		item.UpdatedAt = now
	}
	if len(creates) > 0 {
		if err := uc.mediaRepo.CreateBatch(creates); err != nil {
			return nil, err
		}
	}
	for _, item := range updates {
		if err := uc.mediaRepo.Update(item); err != nil {
			return nil, err
		}
	}
	out := make([]*dto.MediaItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMediaResponse(item))
	}
	return out, nil
}

// Update edita os campos de quantidade de um item e reclassifica.
// Uma edição de quantidade derruba um force-OK anterior: o classificador volta a mandar.
func (uc *UseCase) Update(userID, itemID string, in dto.UpdateMediaItemRequest) (*dto.MediaItemResponse, error) {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.itemByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if in.QuantidadeKg != nil {
		if in.QuantidadeKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.QuantidadeKg = *in.QuantidadeKg
	}
	if in.QuantidadeCaixas != nil {
		if in.QuantidadeCaixas.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.QuantidadeCaixas = *in.QuantidadeCaixas
	}
	if in.MediaSistema != nil {
		if in.MediaSistema.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MediaSistema = *in.MediaSistema
	}
	item.ForcedStatus = false
	item.ForcedReason = ""
	item.ForcedBy = ""
	item.ForcedAt = nil
	if err := uc.reclassify(sep.ID, item); err != nil {
		return nil, err
	}
	if err := uc.mediaRepo.Update(item); err != nil {
		return nil, err
	}
	return toMediaResponse(item), nil
}

// ForceOK força o status de um item para OK, registrando motivo, autor e instante.
// Rejeitado com ErrStatusAlreadyOK se o status atual já for OK.
func (uc *UseCase) ForceOK(userID, itemID string, in dto.ForceStatusRequest) (*dto.MediaItemResponse, error) {
	if _, err := uc.activeSeparation(userID); err != nil {
		return nil, err
	}
	item, err := uc.itemByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == dommedia.StatusOK {
		return nil, domain.ErrStatusAlreadyOK
	}
	now := time.Now()
	item.Status = dommedia.StatusOK
	item.ForcedStatus = true
	item.ForcedReason = in.Reason
	item.ForcedBy = userID
	item.ForcedAt = &now
	item.UpdatedAt = now
	if err := uc.mediaRepo.Update(item); err != nil {
		return nil, err
	}
	uc.activity.Record(userID, audit.ActionForceStatus, map[string]any{
		"item_id": item.ID,
		"codigo":  item.Codigo,
		"reason":  in.Reason,
	})
	return toMediaResponse(item), nil
}

// SetCustomMedia substitui a média de sistema por um valor informado e
// reexecuta a classificação. A média original fica no metadata para auditoria.
func (uc *UseCase) SetCustomMedia(userID, itemID string, in dto.CustomMediaRequest) (*dto.MediaItemResponse, error) {
	if in.MediaSistema.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.itemByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Metadata == nil {
		item.Metadata = map[string]any{}
	}
	// Só o primeiro override guarda a média original
	if _, ok := item.Metadata["media_sistema_original"]; !ok {
		item.Metadata["media_sistema_original"] = item.MediaSistema.String()
	}
	item.MediaSistema = in.MediaSistema
	if err := uc.reclassify(sep.ID, item); err != nil {
		return nil, err
	}
	if err := uc.mediaRepo.Update(item); err != nil {
		return nil, err
	}
	uc.activity.Record(userID, audit.ActionCustomMedia, map[string]any{
		"item_id":      item.ID,
		"codigo":       item.Codigo,
		"nova_media":   in.MediaSistema.String(),
	})
	return toMediaResponse(item), nil
}

// Clear remove todos os itens da análise da separação ativa.
func (uc *UseCase) Clear(userID string) error {
	sep, err := uc.activeSeparation(userID)
	if err != nil {
		return err
	}
	if err := uc.mediaRepo.DeleteAll(userID, sep.ID); err != nil {
		return err
	}
	uc.activity.Record(userID, audit.ActionClearMedia, map[string]any{"separation_id": sep.ID})
	return nil
}

// refresh atualiza estoque e campos derivados de um item já persistido,
// gravando apenas quando algo mudou. Itens com force-OK mantêm o status.
func (uc *UseCase) refresh(separationID string, item *entity.MediaAnalysisItem) error {
	estoque, err := uc.qtyRepo.SumByMaterial(separationID, item.Codigo)
	if err != nil {
		return err
	}
	result, err := dommedia.Classify(dommedia.Input{
		EstoqueAtual:     estoque,
		QuantidadeCaixas: item.QuantidadeCaixas,
		QuantidadeKg:     item.QuantidadeKg,
		MediaSistema:     item.MediaSistema,
	})
	if err != nil {
		return err
	}
	status := result.Status
	if item.ForcedStatus {
		status = dommedia.StatusOK
	}
	unchanged := item.EstoqueAtual.Equal(estoque) &&
		item.DiferencaCaixas.Equal(result.DiferencaCaixas) &&
		item.MediaReal.Equal(result.MediaReal) &&
		item.Status == status
	if unchanged {
		return nil
	}
	item.EstoqueAtual = estoque
	item.DiferencaCaixas = result.DiferencaCaixas
	item.MediaReal = result.MediaReal
	item.Status = status
	item.UpdatedAt = time.Now()
	return uc.mediaRepo.Update(item)
}

// reclassify recalcula estoque e status de um item (sem respeitar force-OK).
func (uc *UseCase) reclassify(separationID string, item *entity.MediaAnalysisItem) error {
	estoque, err := uc.qtyRepo.SumByMaterial(separationID, item.Codigo)
	if err != nil {
		return err
	}
	result, err := dommedia.Classify(dommedia.Input{
		EstoqueAtual:     estoque,
		QuantidadeCaixas: item.QuantidadeCaixas,
		QuantidadeKg:     item.QuantidadeKg,
		MediaSistema:     item.MediaSistema,
	})
	if err != nil {
		return err
	}
	item.EstoqueAtual = estoque
	item.DiferencaCaixas = result.DiferencaCaixas
	item.MediaReal = result.MediaReal
	item.Status = result.Status
	item.UpdatedAt = time.Now()
	return nil
}

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

func (uc *UseCase) itemByID(userID, itemID string) (*entity.MediaAnalysisItem, error) {
	item, err := uc.mediaRepo.GetByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toMediaResponse(item *entity.MediaAnalysisItem) *dto.MediaItemResponse {
	return &dto.MediaItemResponse{
		ID:               item.ID,
		Codigo:           item.Codigo,
		Material:         item.Material,
		QuantidadeKg:     item.QuantidadeKg,
		QuantidadeCaixas: item.QuantidadeCaixas,
		MediaSistema:     item.MediaSistema,
		EstoqueAtual:     item.EstoqueAtual,
		DiferencaCaixas:  item.DiferencaCaixas,
		MediaReal:        item.MediaReal,
		Status:           item.Status,
		ForcedStatus:     item.ForcedStatus,
		ForcedReason:     item.ForcedReason,
		ForcedBy:         item.ForcedBy,
		ForcedAt:         item.ForcedAt,
		Metadata:         item.Metadata,
		UpdatedAt:        item.UpdatedAt,
	}
}
