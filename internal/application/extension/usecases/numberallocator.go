package usecases

import (
	"context"
	"fmt"

	"centrex/internal/domain/extension"
)

// NumberAllocator proposes the next free extension number for a tenant.
// The proposal is advisory: concurrent creates can race to the same
// number, and the losing insert surfaces as a uniqueness conflict that
// the create flow retries.
type NumberAllocator struct {
	extensionRepo extension.Repository
	floor         int
}

func NewNumberAllocator(extensionRepo extension.Repository, floor int) *NumberAllocator {
	if floor <= 0 {
		floor = extension.DefaultNumberFloor
	}
	return &NumberAllocator{
		extensionRepo: extensionRepo,
		floor:         floor,
	}
}

func (a *NumberAllocator) Next(ctx context.Context, merchantNumber string) (string, error) {
	numbers, err := a.extensionRepo.ListNumbersByMerchant(ctx, merchantNumber)
	if err != nil {
		return "", fmt.Errorf("failed to read existing extension numbers: %w", err)
	}
	return extension.NextNumber(numbers, a.floor), nil
}
