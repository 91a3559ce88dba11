package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository        *AdminRepository
	StudentRepository      *StudentRepository
	CompanyRepository      *CompanyRepository
	DriveRepository        *DriveRepository
	ApplicationRepository  *ApplicationRepository
	NotificationRepository *NotificationRepository
	DeviceTokenRepository  *DeviceTokenRepository
	SettingsRepository     *SettingsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:        NewAdminRepository(db),
		StudentRepository:      NewStudentRepository(db),
		CompanyRepository:      NewCompanyRepository(db),
		DriveRepository:        NewDriveRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DeviceTokenRepository:  NewDeviceTokenRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
	}
}
