package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProjectTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Project{},
		&models.ProjectSection{},
		&models.ProjectImage{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func newProjectTestServer(t *testing.T, db *gorm.DB) (*Server, *fiber.App) {
	t.Helper()
	repo := repository.NewProjectRepository(db)
	s := &Server{
		db:             db,
		projectRepo:    repo,
		projectService: service.NewProjectService(repo),
	}

	app := fiber.New()
	app.Get("/api/projects/:slug", s.GetProjectBySlug)
	app.Post("/api/admin/projects", s.AdminCreateProject)
	app.Put("/api/admin/projects/:id", s.AdminUpdateProject)
	app.Delete("/api/admin/projects/:id", s.AdminDeleteProject)
	app.Post("/api/admin/projects/:id/sections/reorder", s.AdminReorderSections)
	app.Post("/api/admin/projects/:id/sections", s.AdminCreateSection)
	app.Put("/api/admin/projects/:id/sections/:sectionId", s.AdminUpdateSection)
	return s, app
}

func createTestProject(t *testing.T, db *gorm.DB, slug string) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:            "Project " + slug,
		Slug:             slug,
		ShortDescription: "short",
		FullDescription:  "full",
		TechStack:        models.StringList{"go"},
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestAdminCreateProjectDuplicateSlug(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	createTestProject(t, db, "atelier")

	resp := jsonRequest(t, app, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":             "Another",
		"slug":              "atelier",
		"short_description": "short",
		"full_description":  "full",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminCreateProjectMissingFields(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)

	resp := jsonRequest(t, app, http.MethodPost, "/api/admin/projects", map[string]any{
		"title": "No slug",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Missing required fields", out.Error)
}

func TestAdminCreateProjectDefaults(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)

	resp := jsonRequest(t, app, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":             "Fresh",
		"slug":              "fresh",
		"short_description": "short",
		"full_description":  "full",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved models.Project
	require.NoError(t, db.Where("slug = ?", "fresh").First(&saved).Error)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, models.ProjectStatusCompleted, saved.Status)
	assert.False(t, saved.IsFeatured)
}

func TestAdminUpdateProjectKeepsOwnSlug(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	project := createTestProject(t, db, "atelier")

	resp := jsonRequest(t, app, http.MethodPut, "/api/admin/projects/"+project.ID, map[string]any{
		"title":             "Renamed",
		"slug":              "atelier",
		"short_description": "short",
		"full_description":  "full",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.Project
	require.NoError(t, db.First(&saved, "id = ?", project.ID).Error)
	assert.Equal(t, "Renamed", saved.Title)
}

func TestAdminUpdateProjectSlugTaken(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	createTestProject(t, db, "first")
	second := createTestProject(t, db, "second")

	resp := jsonRequest(t, app, http.MethodPut, "/api/admin/projects/"+second.ID, map[string]any{
		"title":             "Second",
		"slug":              "first",
		"short_description": "short",
		"full_description":  "full",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var saved models.Project
	require.NoError(t, db.First(&saved, "id = ?", second.ID).Error)
	assert.Equal(t, "second", saved.Slug)
}

func TestAdminDeleteProjectCascades(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	project := createTestProject(t, db, "atelier")

	order := 0
	require.NoError(t, db.Create(&models.ProjectSection{
		ProjectID: project.ID, SectionType: "text", OrderIndex: &order,
	}).Error)
	require.NoError(t, db.Create(&models.ProjectImage{
		ProjectID: project.ID, ImageURL: "https://example.com/a.png",
	}).Error)

	resp := jsonRequest(t, app, http.MethodDelete, "/api/admin/projects/"+project.ID, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var projects, sections, images int64
	require.NoError(t, db.Model(&models.Project{}).Count(&projects).Error)
	require.NoError(t, db.Model(&models.ProjectSection{}).Count(&sections).Error)
	require.NoError(t, db.Model(&models.ProjectImage{}).Count(&images).Error)
	assert.Zero(t, projects)
	assert.Zero(t, sections)
	assert.Zero(t, images)
}

func TestAdminReorderSectionsSwapsExactlyTwo(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	project := createTestProject(t, db, "atelier")

	var sections [3]models.ProjectSection
	for i := range sections {
		order := i
		sections[i] = models.ProjectSection{
			ProjectID:   project.ID,
			SectionType: "text",
			OrderIndex:  &order,
		}
		require.NoError(t, db.Create(&sections[i]).Error)
	}

	resp := jsonRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/admin/projects/%s/sections/reorder", project.ID),
		map[string]any{"first_id": sections[0].ID, "second_id": sections[1].ID})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded [3]models.ProjectSection
	for i := range reloaded {
		require.NoError(t, db.First(&reloaded[i], sections[i].ID).Error)
		require.NotNil(t, reloaded[i].OrderIndex)
	}
	// The two named siblings exchanged positions; the third is untouched.
	assert.Equal(t, 1, *reloaded[0].OrderIndex)
	assert.Equal(t, 0, *reloaded[1].OrderIndex)
	assert.Equal(t, 2, *reloaded[2].OrderIndex)
}

func TestAdminReorderSectionsWrongProject(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	mine := createTestProject(t, db, "mine")
	other := createTestProject(t, db, "other")

	order := 0
	section := models.ProjectSection{ProjectID: other.ID, SectionType: "text", OrderIndex: &order}
	require.NoError(t, db.Create(&section).Error)

	resp := jsonRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/admin/projects/%s/sections/reorder", mine.ID),
		map[string]any{"first_id": section.ID, "second_id": section.ID + 1})
	defer func() { _ = resp.Body.Close() }()

	// Sections scoped to another project cannot be swapped through this one.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestAdminUpdateSectionPartial(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	project := createTestProject(t, db, "atelier")

	title := "Original"
	content := "Body"
	section := models.ProjectSection{
		ProjectID:   project.ID,
		SectionType: "text",
		Title:       &title,
		Content:     &content,
	}
	require.NoError(t, db.Create(&section).Error)

	resp := jsonRequest(t, app, http.MethodPut,
		fmt.Sprintf("/api/admin/projects/%s/sections/%d", project.ID, section.ID),
		map[string]any{"title": "Changed"})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.ProjectSection
	require.NoError(t, db.First(&saved, section.ID).Error)
	require.NotNil(t, saved.Title)
	require.NotNil(t, saved.Content)
	assert.Equal(t, "Changed", *saved.Title)
	assert.Equal(t, "Body", *saved.Content)
}

func TestGetProjectBySlugOrdersChildren(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)
	project := createTestProject(t, db, "atelier")

	two, one := 2, 1
	for _, s := range []models.ProjectSection{
		{ProjectID: project.ID, SectionType: "text", OrderIndex: &two},
		{ProjectID: project.ID, SectionType: "text", OrderIndex: nil},
		{ProjectID: project.ID, SectionType: "text", OrderIndex: &one},
	} {
		s := s
		require.NoError(t, db.Create(&s).Error)
	}

	resp := jsonRequest(t, app, http.MethodGet, "/api/projects/atelier", nil)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Sections, 3)

	// NULL order_index sorts as zero, then ascending.
	assert.Nil(t, out.Sections[0].OrderIndex)
	require.NotNil(t, out.Sections[1].OrderIndex)
	assert.Equal(t, 1, *out.Sections[1].OrderIndex)
	require.NotNil(t, out.Sections[2].OrderIndex)
	assert.Equal(t, 2, *out.Sections[2].OrderIndex)
}

func TestGetProjectBySlugNotFound(t *testing.T) {
	db := setupProjectTestDB(t)
	_, app := newProjectTestServer(t, db)

	resp := jsonRequest(t, app, http.MethodGet, "/api/projects/nope", nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
