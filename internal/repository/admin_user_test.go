package repository

import (
	"context"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestAdminUserRepositoryAccountLifecycle(t *testing.T) {
	db := setupAdminUserTestDB(t)
	repo := NewAdminUserRepository(db)
	ctx := context.Background()

	admin := &models.AdminUser{Email: "admin@atelier.dev", Name: "Admin", Password: "hash-one"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NotZero(t, admin.ID)

	byEmail, err := repo.GetByEmail(ctx, "admin@atelier.dev")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, admin.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@atelier.dev")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Create(ctx, &models.AdminUser{
		Email: "second@atelier.dev", Name: "Second", Password: "hash-two",
	}))
	admins, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "admin@atelier.dev", admins[0].Email)

	require.NoError(t, repo.UpdatePassword(ctx, admin.ID, "hash-three"))
	updated, err := repo.GetByEmail(ctx, "admin@atelier.dev")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "hash-three", updated.Password)
}
