package separation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	domsep "github.com/colhetron/separacao-api/internal/domain/separation"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// CutUseCase aplica cortes de quantidade sobre um material da separação ativa.
// O plano é calculado pelo serviço de domínio (BuildCutPlan); as escritas por
// loja são despachadas em paralelo e agregadas. Não há rollback entre lojas:
// uma falha individual reporta erro sem desfazer as escritas já aplicadas.
type CutUseCase struct {
	sepRepo  repository.SeparationRepository
	itemRepo repository.SeparationItemRepository
	qtyRepo  repository.QuantityRepository
	activity *audit.ActivityLogger
}

// NewCutUseCase constrói o caso de uso de corte.
func NewCutUseCase(
	sepRepo repository.SeparationRepository,
	itemRepo repository.SeparationItemRepository,
	qtyRepo repository.QuantityRepository,
	activity *audit.ActivityLogger,
) *CutUseCase {
	return &CutUseCase{sepRepo: sepRepo, itemRepo: itemRepo, qtyRepo: qtyRepo, activity: activity}
}

// Cut calcula e aplica o corte. Opera apenas sobre linhas com quantidade > 0
// do item da separação ativa que casa com o código do material.
func (uc *CutUseCase) Cut(userID string, in dto.CutRequest) (*dto.CutResponse, error) {
	sep, err := uc.sepRepo.GetActive(userID)
	if err != nil {
		return nil, err
	}
	if sep == nil {
		return nil, domain.ErrNoActiveSeparation
	}

	codigo := normalize.Codigo(in.MaterialCodigo)
	item, err := uc.itemRepo.GetByCodigo(sep.ID, codigo)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	qts, err := uc.qtyRepo.ListByItem(item.ID)
	if err != nil {
		return nil, err
	}
	current := make(map[string]decimal.Decimal, len(qts))
	for _, q := range qts {
		if q.Quantidade.IsPositive() {
			current[q.LojaCodigo] = q.Quantidade
		}
	}

	plan, err := domsep.BuildCutPlan(current, toDomainCutRequest(in))
	if err != nil {
		return nil, err
	}

	// Escritas por loja em paralelo, sem dependência de ordem entre elas.
	// errgroup agrega o primeiro erro; escritas já aplicadas não são revertidas.
	var g errgroup.Group
	for _, action := range plan.Actions {
		g.Go(func() error {
			if action.Delete {
				if err := uc.qtyRepo.Delete(item.ID, action.LojaCodigo); err != nil {
					return fmt.Errorf("remover alocação da loja %s: %w", action.LojaCodigo, err)
				}
				return nil
			}
			if err := uc.qtyRepo.Update(item.ID, action.LojaCodigo, action.NovaQuantidade); err != nil {
				return fmt.Errorf("atualizar alocação da loja %s: %w", action.LojaCodigo, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc.activity.Record(userID, audit.ActionCut, map[string]any{
		"separation_id":   sep.ID,
		"material":        codigo,
		"cut_type":        in.Type,
		"affected_stores": plan.AffectedStores(),
		"total_cut":       plan.TotalCortado.String(),
	})
	return &dto.CutResponse{
		AffectedStores:   plan.AffectedStores(),
		TotalCutQuantity: plan.TotalCortado,
	}, nil
}

func toDomainCutRequest(in dto.CutRequest) domsep.CutRequest {
	req := domsep.CutRequest{Type: in.Type}
	for _, loja := range in.Lojas {
		req.Lojas = append(req.Lojas, normalize.Codigo(loja))
	}
	for _, pc := range in.Parciais {
		req.Parciais = append(req.Parciais, domsep.PartialCut{
			LojaCodigo: normalize.Codigo(pc.LojaCodigo),
			Quantidade: pc.Quantidade,
		})
	}
	return req
}
