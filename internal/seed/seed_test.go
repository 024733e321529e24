package seed

import (
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Project{},
		&models.ProjectSection{},
		&models.ProjectImage{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeedProjects(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	projects, err := s.SeedProjects(6)
	require.NoError(t, err)
	require.Len(t, projects, 6)

	slugs := map[string]bool{}
	for _, p := range projects {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.False(t, slugs[p.Slug], "slug %q repeated", p.Slug)
		slugs[p.Slug] = true
	}

	var sections, images int64
	require.NoError(t, db.Model(&models.ProjectSection{}).Count(&sections).Error)
	require.NoError(t, db.Model(&models.ProjectImage{}).Count(&images).Error)
	assert.NotZero(t, sections)
	assert.NotZero(t, images)
}

func TestSeedMessages(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.SeedMessages(10))

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(10), count)
}

func TestClearAll(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	_, err := s.SeedProjects(3)
	require.NoError(t, err)
	require.NoError(t, s.SeedMessages(3))

	require.NoError(t, s.ClearAll())

	for _, model := range []any{
		&models.Project{}, &models.ProjectSection{}, &models.ProjectImage{}, &models.ContactMessage{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T should be empty", model)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-cool-app", slugify("My Cool App"))
	assert.Equal(t, "app2", slugify("App2!"))
	assert.Equal(t, "a-b", slugify("  A  B  "))
}
