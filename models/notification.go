package models

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotificationMatchResult      NotificationType = "match_result"
	NotificationScoreUpdated     NotificationType = "score_updated"
	NotificationMatchConfirmed   NotificationType = "match_confirmation"
	NotificationResultFinalized  NotificationType = "result_finalized"
	NotificationConfirmationDrop NotificationType = "confirmation_reset"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID        int                  `json:"id" db:"id"`
	UserID    int                  `json:"user_id" db:"user_id"`
	Type      NotificationType     `json:"type" db:"type"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Metadata  json.RawMessage      `json:"metadata,omitempty" db:"metadata"`
	Priority  NotificationPriority `json:"priority" db:"priority"`
	IsRead    bool                 `json:"is_read" db:"is_read"`
	EmailSent bool                 `json:"email_sent" db:"email_sent"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`

	// SendEmail не хранится - это указание диспетчеру.
	SendEmail bool `json:"-" db:"-"`
}
