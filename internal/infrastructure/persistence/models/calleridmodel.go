package models

type CallerIDModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"uniqueIndex;size:50;not null;column:sid"`
	MerchantNumber string `gorm:"size:20;not null;index"`
	PhoneNumber    string `gorm:"size:30;not null"`
	DisplayName    string `gorm:"size:100;not null"`
	Channels       int    `gorm:"not null;default:1"`
	Status         string `gorm:"size:20;not null;index"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CallerIDModel) TableName() string {
	return "caller_ids"
}
