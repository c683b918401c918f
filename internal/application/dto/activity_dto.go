package dto

import "time"

// ActivityLogResponse entrada do histórico de atividades do usuário.
type ActivityLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
