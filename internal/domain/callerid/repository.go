package callerid

import "context"

type Repository interface {
	Save(ctx context.Context, cid *CallerID) error
	Update(ctx context.Context, cid *CallerID) error
	Delete(ctx context.Context, calleridID uint) error
	FindByID(ctx context.Context, calleridID uint) (*CallerID, error)
	FindBySID(ctx context.Context, sid string) (*CallerID, error)
	ListByMerchant(ctx context.Context, merchantNumber string) ([]*CallerID, error)
}
