package entity

import "time"

// ActivityLog registro de auditoria best-effort: gravado em segundo plano,
// falhas nunca abortam a operação principal.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string // "cut", "force_status", "upload", "finalize", ...
	Details   map[string]any
	CreatedAt time.Time
}
