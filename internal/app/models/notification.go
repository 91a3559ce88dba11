package models

import "time"

// Notification defines the notification model based on the 'notifications' table.
// Data carries type-specific payload fields (drive id, application id).
type Notification struct {
	ID        int64             `json:"id" db:"id" example:"1"`
	StudentID int64             `json:"studentId" db:"student_id" example:"42"`
	Type      NotificationType  `json:"type" db:"type" example:"application_status"`
	Title     string            `json:"title" db:"title" example:"Application Status Updated"`
	Message   string            `json:"message" db:"message"`
	Data      map[string]string `json:"data,omitempty" db:"data"`
	Read      bool              `json:"read" db:"read"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}

// DeviceToken is one registered push target ('device_tokens' table).
// A token is unique per student; re-registering bumps LastUsedAt.
type DeviceToken struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	Token      string    `json:"token" db:"token"`
	Platform   string    `json:"platform,omitempty" db:"platform" example:"android"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	LastUsedAt time.Time `json:"lastUsedAt" db:"last_used_at"`
}
