package models

// ExtensionModel persists extensions. The composite unique index on
// (merchant_number, extension_number) backs the numbering allocator's
// conflict detection; extension_code is unique on its own because it is
// derived from the same pair.
type ExtensionModel struct {
	ID              uint   `gorm:"primaryKey"`
	SID             string `gorm:"uniqueIndex;size:50;not null;column:sid"`
	MerchantNumber  string `gorm:"size:20;not null;index;uniqueIndex:idx_merchant_ext_number,priority:1"`
	ExtensionNumber string `gorm:"size:20;not null;uniqueIndex:idx_merchant_ext_number,priority:2"`
	ExtensionCode   string `gorm:"uniqueIndex;size:40;not null"`
	DisplayName     string `gorm:"size:100;not null"`
	Technology      string `gorm:"size:10;not null"`
	Secret          string `gorm:"size:100;not null"`
	CallerIDRef     *uint  `gorm:"index"`
	Status          string `gorm:"size:20;not null;index"`
	OwnerID         uint   `gorm:"not null;index"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: no foreign key constraints or associations. Relationships
	// are managed by application business logic.
}

func (ExtensionModel) TableName() string {
	return "extensions"
}
