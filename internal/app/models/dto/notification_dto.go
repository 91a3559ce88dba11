package dto

// BroadcastAudience selects the recipients of a broadcast. Exactly one
// selector should be set; branch admins are clamped to their own branch.
type BroadcastAudience struct {
	All      bool     `json:"all,omitempty"`
	Branches []string `json:"branches,omitempty"`
	RegdIDs  []string `json:"regdIds,omitempty"`
	DriveID  *int64   `json:"driveId,omitempty"`
	Status   *string  `json:"status,omitempty" binding:"omitempty,oneof=pending accepted rejected"`
}

// BroadcastRequest represents an admin announcement to a set of students
type BroadcastRequest struct {
	Title    string            `json:"title" binding:"required"`
	Message  string            `json:"message" binding:"required"`
	Audience BroadcastAudience `json:"audience" binding:"required"`
}

// BroadcastResponse reports how many notifications a broadcast created
type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}

// UpdateNotificationRequest represents an edit of a stored notification
type UpdateNotificationRequest struct {
	Title   *string `json:"title,omitempty"`
	Message *string `json:"message,omitempty"`
}

// BulkDeleteNotificationsRequest represents a bulk delete by id
type BulkDeleteNotificationsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// NotificationListFilter captures query parameters for listing
// notifications. StudentID is honored for admins only; students always
// see their own rows.
type NotificationListFilter struct {
	StudentID int64 `form:"studentId"`
	Unread    bool  `form:"unread"`
	Page      int   `form:"page"`
	Size      int   `form:"size"`
}

// RegisterDeviceTokenRequest represents a push token registration
type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform,omitempty" binding:"omitempty,oneof=android ios web"`
}
