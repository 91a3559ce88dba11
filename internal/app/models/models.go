package models

// Role identifies the caller type carried in session claims.
type Role string

const (
	RoleMainAdmin   Role = "main-admin"
	RoleBranchAdmin Role = "branch-admin"
	RoleStudent     Role = "student"
)

// IsAdmin reports whether the role is one of the admin roles.
func (r Role) IsAdmin() bool {
	return r == RoleMainAdmin || r == RoleBranchAdmin
}

// ApplicationStatus is the overall outcome of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// RoundOutcome is the judgement of a single interview round.
type RoundOutcome string

const (
	RoundAccepted RoundOutcome = "accepted"
	RoundRejected RoundOutcome = "rejected"
)

// Valid reports whether the outcome is one of the known values.
func (o RoundOutcome) Valid() bool {
	return o == RoundAccepted || o == RoundRejected
}

// DriveStatus is the publication state of a drive.
type DriveStatus string

const (
	DriveDraft     DriveStatus = "draft"
	DrivePublished DriveStatus = "published"
	DriveClosed    DriveStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s DriveStatus) Valid() bool {
	switch s {
	case DriveDraft, DrivePublished, DriveClosed:
		return true
	}
	return false
}

// NotificationType categorises notification rows.
type NotificationType string

const (
	NotificationApplicationStatus NotificationType = "application_status"
	NotificationRoundUpdate       NotificationType = "round_update"
	NotificationDrivePublished    NotificationType = "drive_published"
	NotificationAnnouncement      NotificationType = "announcement"
	NotificationDataRequest       NotificationType = "data_request"
)
