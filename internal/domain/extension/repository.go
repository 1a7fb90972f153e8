package extension

import "context"

type Filter struct {
	Status   *Status
	OwnerID  *uint
	Page     int
	PageSize int
}

type Repository interface {
	Save(ctx context.Context, ext *Extension) error
	Update(ctx context.Context, ext *Extension) error
	Delete(ctx context.Context, extensionID uint) error
	FindByID(ctx context.Context, extensionID uint) (*Extension, error)
	FindBySID(ctx context.Context, sid string) (*Extension, error)
	ListByMerchant(ctx context.Context, merchantNumber string, filter Filter) ([]*Extension, int64, error)
	// ListNumbersByMerchant returns the raw extension numbers of a tenant
	// for the numbering allocator. Read-after-write consistent.
	ListNumbersByMerchant(ctx context.Context, merchantNumber string) ([]string, error)
}
