package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAllocator_Next(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name:     "empty tenant starts at the floor",
			existing: nil,
			want:     "101",
		},
		{
			name:     "max plus one",
			existing: []string{"101", "102", "103"},
			want:     "104",
		},
		{
			name:     "non-numeric values are ignored",
			existing: []string{"101", "bad", "105"},
			want:     "106",
		},
		{
			name:     "only unparsable values falls back to the floor",
			existing: []string{"bad", "worse"},
			want:     "101",
		},
		{
			name:     "gaps are not reused",
			existing: []string{"101", "205"},
			want:     "206",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockExtensionRepository{
				ListNumbersByMerchantFunc: func(ctx context.Context, merchantNumber string) ([]string, error) {
					return tt.existing, nil
				},
			}
			allocator := NewNumberAllocator(repo, 101)

			got, err := allocator.Next(context.Background(), "500")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberAllocator_Next_ZeroFloorDefaults(t *testing.T) {
	repo := &mockExtensionRepository{}
	allocator := NewNumberAllocator(repo, 0)

	got, err := allocator.Next(context.Background(), "500")
	require.NoError(t, err)
	assert.Equal(t, "101", got)
}
