package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// Ações registradas no log de atividades.
const (
	ActionUpload      = "upload"
	ActionReforco     = "reforco"
	ActionCut         = "cut"
	ActionEditQty     = "edit_quantity"
	ActionForceStatus = "force_status"
	ActionCustomMedia = "custom_media"
	ActionFinalize    = "finalize"
	ActionClearMedia  = "clear_media"
	ActionImport      = "import"
	ActionExport      = "export"
)

// ActivityLogger grava o trilho de auditoria em segundo plano (best-effort).
// A escrita roda em goroutine própria: falha de auditoria é logada e nunca
// propagada para a operação principal.
type ActivityLogger struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
}

// NewActivityLogger constrói o logger de atividades.
func NewActivityLogger(repo repository.ActivityLogRepository, log *logger.Logger) *ActivityLogger {
	return &ActivityLogger{repo: repo, log: log}
}

// List devolve o histórico de atividades do usuário, mais recentes primeiro.
func (a *ActivityLogger) List(userID string, limit, offset int) ([]*entity.ActivityLog, error) {
	return a.repo.ListByUser(userID, limit, offset)
}

// Record dispara a gravação assíncrona de um evento de auditoria.
func (a *ActivityLogger) Record(userID, action string, details map[string]any) {
	entry := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	go func() {
		if err := a.repo.Create(entry); err != nil {
			a.log.Warn().Err(err).
				Str("user_id", userID).
				Str("action", action).
				Msg("falha ao gravar log de atividade")
		}
	}()
}
