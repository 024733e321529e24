// Package service implements the business rules that sit between HTTP
// handlers and repositories.
package service

import (
	"context"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// ProjectService enforces the integrity rules around project content:
// required fields, slug uniqueness, transactional cascade delete, and
// sibling order swaps.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// ProjectInput carries the writable project fields for create and update.
type ProjectInput struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"short_description"`
	FullDescription  string   `json:"full_description"`
	Role             *string  `json:"role"`
	Architecture     *string  `json:"architecture"`
	TechStack        []string `json:"tech_stack"`
	GithubURL        *string  `json:"github_url"`
	LiveURL          *string  `json:"live_url"`
	FeaturedImage    *string  `json:"featured_image"`
	IsFeatured       bool     `json:"is_featured"`
	Status           string   `json:"status"`
}

// SectionInput carries the writable section fields for create.
type SectionInput struct {
	SectionType string  `json:"section_type"`
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	OrderIndex  *int    `json:"order_index"`
}

// ImageInput carries the writable image fields for create.
type ImageInput struct {
	ImageURL   string  `json:"image_url"`
	Caption    *string `json:"caption"`
	OrderIndex *int    `json:"order_index"`
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// validateRequired checks the four mandatory project fields. It runs before
// any uniqueness query or write.
func validateRequired(in ProjectInput) error {
	if in.Title == "" || in.Slug == "" || in.ShortDescription == "" || in.FullDescription == "" {
		return models.NewValidationError("Missing required fields")
	}
	return nil
}

func applyDefaults(in ProjectInput) ProjectInput {
	if in.Status == "" {
		in.Status = string(models.ProjectStatusCompleted)
	}
	if in.TechStack == nil {
		in.TechStack = []string{}
	}
	return in
}

// CreateProject validates required fields, refuses duplicate slugs, and
// persists a new project.
func (s *ProjectService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if err := validateRequired(in); err != nil {
		return nil, err
	}

	exists, err := s.projectRepo.SlugExists(ctx, in.Slug, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Slug already exists")
	}

	in = applyDefaults(in)
	project := &models.Project{
		Title:            in.Title,
		Slug:             in.Slug,
		ShortDescription: in.ShortDescription,
		FullDescription:  in.FullDescription,
		Role:             in.Role,
		Architecture:     in.Architecture,
		TechStack:        models.StringList(in.TechStack),
		GithubURL:        in.GithubURL,
		LiveURL:          in.LiveURL,
		FeaturedImage:    in.FeaturedImage,
		IsFeatured:       in.IsFeatured,
		Status:           models.ProjectStatus(in.Status),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject validates required fields, refuses slugs taken by any other
// project, and rewrites the record. Updating a project to its own unchanged
// slug succeeds.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, in ProjectInput) (*models.Project, error) {
	if err := validateRequired(in); err != nil {
		return nil, err
	}

	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError("Project", id)
	}

	taken, err := s.projectRepo.SlugExists(ctx, in.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("Slug already exists")
	}

	in = applyDefaults(in)
	existing.Title = in.Title
	existing.Slug = in.Slug
	existing.ShortDescription = in.ShortDescription
	existing.FullDescription = in.FullDescription
	existing.Role = in.Role
	existing.Architecture = in.Architecture
	existing.TechStack = models.StringList(in.TechStack)
	existing.GithubURL = in.GithubURL
	existing.LiveURL = in.LiveURL
	existing.FeaturedImage = in.FeaturedImage
	existing.IsFeatured = in.IsFeatured
	existing.Status = models.ProjectStatus(in.Status)

	if err := s.projectRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

// DeleteProject removes the project and all its sections and images in one
// transaction.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundError("Project", id)
	}
	return s.projectRepo.DeleteCascade(ctx, id)
}

// CreateSection adds a content section to the project. Section type
// defaults to "text".
func (s *ProjectService) CreateSection(ctx context.Context, projectID string, in SectionInput) (*models.ProjectSection, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if in.SectionType == "" {
		in.SectionType = "text"
	}
	section := &models.ProjectSection{
		ProjectID:   projectID,
		SectionType: in.SectionType,
		Title:       in.Title,
		Content:     in.Content,
		OrderIndex:  in.OrderIndex,
	}
	if err := s.projectRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection applies a partial update; only keys present in updates
// change.
func (s *ProjectService) UpdateSection(ctx context.Context, projectID string, sectionID uint, updates map[string]any) (*models.ProjectSection, error) {
	if len(updates) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}
	section, err := s.projectRepo.UpdateSection(ctx, projectID, sectionID, updates)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, models.NewNotFoundError("Section", sectionID)
	}
	return section, nil
}

// DeleteSection removes one section from the project.
func (s *ProjectService) DeleteSection(ctx context.Context, projectID string, sectionID uint) error {
	return s.projectRepo.DeleteSection(ctx, projectID, sectionID)
}

// SwapSections exchanges the order_index of exactly the two given sibling
// sections; every other sibling keeps its position.
func (s *ProjectService) SwapSections(ctx context.Context, projectID string, firstID, secondID uint) error {
	if firstID == secondID {
		return models.NewValidationError("Cannot swap a section with itself")
	}
	return s.projectRepo.SwapSectionOrder(ctx, projectID, firstID, secondID)
}

// CreateImage adds a gallery image to the project.
func (s *ProjectService) CreateImage(ctx context.Context, projectID string, in ImageInput) (*models.ProjectImage, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if in.ImageURL == "" {
		return nil, models.NewValidationError("Image URL is required")
	}
	image := &models.ProjectImage{
		ProjectID:  projectID,
		ImageURL:   in.ImageURL,
		Caption:    in.Caption,
		OrderIndex: in.OrderIndex,
	}
	if err := s.projectRepo.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// UpdateImage applies a partial update; only keys present in updates change.
func (s *ProjectService) UpdateImage(ctx context.Context, projectID string, imageID uint, updates map[string]any) (*models.ProjectImage, error) {
	if len(updates) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}
	image, err := s.projectRepo.UpdateImage(ctx, projectID, imageID, updates)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, models.NewNotFoundError("Image", imageID)
	}
	return image, nil
}

// DeleteImage removes one image from the project.
func (s *ProjectService) DeleteImage(ctx context.Context, projectID string, imageID uint) error {
	return s.projectRepo.DeleteImage(ctx, projectID, imageID)
}

// SwapImages exchanges the order_index of exactly the two given sibling
// images.
func (s *ProjectService) SwapImages(ctx context.Context, projectID string, firstID, secondID uint) error {
	if firstID == secondID {
		return models.NewValidationError("Cannot swap an image with itself")
	}
	return s.projectRepo.SwapImageOrder(ctx, projectID, firstID, secondID)
}

func (s *ProjectService) requireProject(ctx context.Context, id string) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return models.NewNotFoundError("Project", id)
	}
	return nil
}
