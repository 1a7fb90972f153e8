package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"centrex/internal/domain/extension"
	"centrex/internal/infrastructure/persistence/models"
	apperrors "centrex/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ExtensionModel{})
	require.NoError(t, err)

	return db
}

func createTestExtension(t *testing.T, merchantNumber, extensionNumber string) *extension.Extension {
	ext, err := extension.NewExtension(merchantNumber, extensionNumber, "Front Desk", extension.TechnologyPJSIP, "s3cretS3cret", 1)
	require.NoError(t, err)
	return ext
}

func TestExtensionRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	t.Run("save new extension successfully", func(t *testing.T) {
		ext := createTestExtension(t, "500", "101")

		err := repo.Save(ctx, ext)
		assert.NoError(t, err)
		assert.NotZero(t, ext.ID())
	})

	t.Run("duplicate number within merchant is a conflict", func(t *testing.T) {
		first := createTestExtension(t, "600", "101")
		require.NoError(t, repo.Save(ctx, first))

		second := createTestExtension(t, "600", "101")
		err := repo.Save(ctx, second)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("same number under another merchant is allowed", func(t *testing.T) {
		first := createTestExtension(t, "700", "101")
		require.NoError(t, repo.Save(ctx, first))

		second := createTestExtension(t, "701", "101")
		assert.NoError(t, repo.Save(ctx, second))
	})
}

func TestExtensionRepository_FindBySID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	ext := createTestExtension(t, "500", "102")
	require.NoError(t, repo.Save(ctx, ext))

	t.Run("found", func(t *testing.T) {
		found, err := repo.FindBySID(ctx, ext.SID())
		require.NoError(t, err)
		assert.Equal(t, ext.ID(), found.ID())
		assert.Equal(t, "500102", found.ExtensionCode())
		assert.Equal(t, extension.TechnologyPJSIP, found.Technology())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindBySID(ctx, "ext_missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestExtensionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	ext := createTestExtension(t, "500", "103")
	require.NoError(t, repo.Save(ctx, ext))

	require.NoError(t, ext.UpdateDisplayName("Back Office"))
	require.NoError(t, ext.UpdateTechnology(extension.TechnologySIP))
	require.NoError(t, repo.Update(ctx, ext))

	found, err := repo.FindByID(ctx, ext.ID())
	require.NoError(t, err)
	assert.Equal(t, "Back Office", found.DisplayName())
	assert.Equal(t, extension.TechnologySIP, found.Technology())
	// number and code are immutable through updates
	assert.Equal(t, "103", found.ExtensionNumber())
	assert.Equal(t, "500103", found.ExtensionCode())
}

func TestExtensionRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	ext := createTestExtension(t, "500", "104")
	require.NoError(t, repo.Save(ctx, ext))

	require.NoError(t, repo.Delete(ctx, ext.ID()))

	_, err := repo.FindByID(ctx, ext.ID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))

	err = repo.Delete(ctx, ext.ID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestExtensionRepository_ListByMerchant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	for _, number := range []string{"101", "102", "103"} {
		require.NoError(t, repo.Save(ctx, createTestExtension(t, "500", number)))
	}
	require.NoError(t, repo.Save(ctx, createTestExtension(t, "600", "101")))

	t.Run("scoped to merchant", func(t *testing.T) {
		list, total, err := repo.ListByMerchant(ctx, "500", extension.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, list, 3)
		assert.Equal(t, "101", list[0].ExtensionNumber())
	})

	t.Run("pagination", func(t *testing.T) {
		list, total, err := repo.ListByMerchant(ctx, "500", extension.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, list, 1)
		assert.Equal(t, "103", list[0].ExtensionNumber())
	})

	t.Run("status filter", func(t *testing.T) {
		inactive := extension.StatusInactive
		list, total, err := repo.ListByMerchant(ctx, "500", extension.Filter{Status: &inactive})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, list)
	})
}

func TestExtensionRepository_ListNumbersByMerchant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtensionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, createTestExtension(t, "500", "101")))
	require.NoError(t, repo.Save(ctx, createTestExtension(t, "500", "205")))
	require.NoError(t, repo.Save(ctx, createTestExtension(t, "600", "999")))

	numbers, err := repo.ListNumbersByMerchant(ctx, "500")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"101", "205"}, numbers)

	numbers, err = repo.ListNumbersByMerchant(ctx, "800")
	require.NoError(t, err)
	assert.Empty(t, numbers)
}
