package models

type SystemSettingModel struct {
	ID          uint   `gorm:"primaryKey"`
	Category    string `gorm:"size:50;not null;uniqueIndex:idx_category_key,priority:1"`
	Key         string `gorm:"column:setting_key;size:100;not null;uniqueIndex:idx_category_key,priority:2"`
	Value       string `gorm:"type:text"`
	ValueType   string `gorm:"size:20;not null;default:string"`
	Description string `gorm:"size:255"`
	UpdatedBy   uint
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (SystemSettingModel) TableName() string {
	return "system_settings"
}
