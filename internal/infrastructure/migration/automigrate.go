package migration

import (
	"centrex/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every model the auto-migrate strategy manages.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.ExtensionModel{},
		&models.CallerIDModel{},
		&models.TicketModel{},
		&models.SystemSettingModel{},
	}
}
