package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// siblingOrder sorts ordered child collections for display. NULL order_index
// sorts as zero; id breaks ties so the order is stable.
const siblingOrder = "COALESCE(order_index, 0) ASC, id ASC"

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListFeatured(ctx context.Context) ([]*models.Project, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, project *models.Project) error
	DeleteCascade(ctx context.Context, id string) error

	CreateSection(ctx context.Context, section *models.ProjectSection) error
	GetSection(ctx context.Context, projectID string, sectionID uint) (*models.ProjectSection, error)
	UpdateSection(ctx context.Context, projectID string, sectionID uint, updates map[string]any) (*models.ProjectSection, error)
	DeleteSection(ctx context.Context, projectID string, sectionID uint) error
	SwapSectionOrder(ctx context.Context, projectID string, firstID, secondID uint) error

	CreateImage(ctx context.Context, image *models.ProjectImage) error
	GetImage(ctx context.Context, projectID string, imageID uint) (*models.ProjectImage, error)
	UpdateImage(ctx context.Context, projectID string, imageID uint, updates map[string]any) (*models.ProjectImage, error)
	DeleteImage(ctx context.Context, projectID string, imageID uint) error
	SwapImageOrder(ctx context.Context, projectID string, firstID, secondID uint) error
}

// projectRepository implements ProjectRepository
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Create(project).Error
	if err == nil {
		cache.InvalidateProjectLists(ctx)
	}
	return err
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// GetBySlug loads a project with its sections and images ordered for
// display. Public reads go through the cache; the admin paths invalidate on
// every write.
func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := cache.Aside(ctx, cache.ProjectKey(slug), &project, cache.ProjectTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
			Where("slug = ?", slug).
			First(&project).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := cache.Aside(ctx, cache.ProjectListKey, &projects, cache.ProjectListTTL, func() error {
		return r.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&projects).Error
	})
	return projects, err
}

func (r *projectRepository) ListFeatured(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := cache.Aside(ctx, cache.FeaturedProjects, &projects, cache.ProjectListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_featured = ?", true).
			Order("created_at DESC").
			Find(&projects).Error
	})
	return projects, err
}

// SlugExists reports whether another project already uses slug. excludeID
// is the id of the record being updated, or empty on create.
func (r *projectRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	// Save with Select("*") so cleared optional fields are written back as NULL.
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(project).Error
	if err == nil {
		cache.InvalidateProject(ctx, project.Slug)
	}
	return err
}

// DeleteCascade removes a project together with its sections and images.
// The whole sequence runs in one transaction so a failing child delete
// leaves the project intact.
func (r *projectRepository) DeleteCascade(ctx context.Context, id string) error {
	var slug string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id", "slug").Where("id = ?", id).First(&project).Error; err != nil {
			return err
		}
		slug = project.Slug

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectSection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
	if err == nil {
		cache.InvalidateProject(ctx, slug)
	}
	return err
}

func (r *projectRepository) CreateSection(ctx context.Context, section *models.ProjectSection) error {
	err := r.db.WithContext(ctx).Create(section).Error
	if err == nil {
		r.invalidateParent(ctx, section.ProjectID)
	}
	return err
}

func (r *projectRepository) GetSection(ctx context.Context, projectID string, sectionID uint) (*models.ProjectSection, error) {
	var section models.ProjectSection
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", sectionID, projectID).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *projectRepository) UpdateSection(ctx context.Context, projectID string, sectionID uint, updates map[string]any) (*models.ProjectSection, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProjectSection{}).
		Where("id = ? AND project_id = ?", sectionID, projectID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	r.invalidateParent(ctx, projectID)
	return r.GetSection(ctx, projectID, sectionID)
}

func (r *projectRepository) DeleteSection(ctx context.Context, projectID string, sectionID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", sectionID, projectID).
		Delete(&models.ProjectSection{}).Error
	if err == nil {
		r.invalidateParent(ctx, projectID)
	}
	return err
}

// SwapSectionOrder exchanges the order_index values of exactly the two
// given sibling sections. No other sibling changes.
func (r *projectRepository) SwapSectionOrder(ctx context.Context, projectID string, firstID, secondID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var first, second models.ProjectSection
		if err := tx.Where("id = ? AND project_id = ?", firstID, projectID).First(&first).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Section", firstID)
			}
			return err
		}
		if err := tx.Where("id = ? AND project_id = ?", secondID, projectID).First(&second).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Section", secondID)
			}
			return err
		}
		if err := tx.Model(&models.ProjectSection{}).Where("id = ?", first.ID).
			Update("order_index", second.OrderIndex).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProjectSection{}).Where("id = ?", second.ID).
			Update("order_index", first.OrderIndex).Error
	})
	if err == nil {
		r.invalidateParent(ctx, projectID)
	}
	return err
}

func (r *projectRepository) CreateImage(ctx context.Context, image *models.ProjectImage) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if err == nil {
		r.invalidateParent(ctx, image.ProjectID)
	}
	return err
}

func (r *projectRepository) GetImage(ctx context.Context, projectID string, imageID uint) (*models.ProjectImage, error) {
	var image models.ProjectImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", imageID, projectID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *projectRepository) UpdateImage(ctx context.Context, projectID string, imageID uint, updates map[string]any) (*models.ProjectImage, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProjectImage{}).
		Where("id = ? AND project_id = ?", imageID, projectID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	r.invalidateParent(ctx, projectID)
	return r.GetImage(ctx, projectID, imageID)
}

func (r *projectRepository) DeleteImage(ctx context.Context, projectID string, imageID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", imageID, projectID).
		Delete(&models.ProjectImage{}).Error
	if err == nil {
		r.invalidateParent(ctx, projectID)
	}
	return err
}

// SwapImageOrder exchanges the order_index values of exactly the two given
// sibling images.
func (r *projectRepository) SwapImageOrder(ctx context.Context, projectID string, firstID, secondID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var first, second models.ProjectImage
		if err := tx.Where("id = ? AND project_id = ?", firstID, projectID).First(&first).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Image", firstID)
			}
			return err
		}
		if err := tx.Where("id = ? AND project_id = ?", secondID, projectID).First(&second).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Image", secondID)
			}
			return err
		}
		if err := tx.Model(&models.ProjectImage{}).Where("id = ?", first.ID).
			Update("order_index", second.OrderIndex).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProjectImage{}).Where("id = ?", second.ID).
			Update("order_index", first.OrderIndex).Error
	})
	if err == nil {
		r.invalidateParent(ctx, projectID)
	}
	return err
}

func (r *projectRepository) invalidateParent(ctx context.Context, projectID string) {
	var slug string
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Pluck("slug", &slug).Error; err == nil && slug != "" {
		cache.InvalidateProject(ctx, slug)
	}
}
