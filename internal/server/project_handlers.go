package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProjects handles GET /api/projects
func (s *Server) GetProjects(c *fiber.Ctx) error {
	projects, err := s.projectRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"projects": projects,
	})
}

// GetFeaturedProjects handles GET /api/projects/featured
func (s *Server) GetFeaturedProjects(c *fiber.Ctx) error {
	projects, err := s.projectRepo.ListFeatured(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"projects": projects,
	})
}

// GetProjectBySlug handles GET /api/projects/:slug. Sections and images come
// back ordered by order_index ascending.
func (s *Server) GetProjectBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	project, err := s.projectRepo.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if project == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Project", slug))
	}
	return c.JSON(project)
}

// AdminGetProjects handles GET /api/admin/projects
func (s *Server) AdminGetProjects(c *fiber.Ctx) error {
	projects, err := s.projectRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"projects": projects,
	})
}

// AdminGetProject handles GET /api/admin/projects/:id
func (s *Server) AdminGetProject(c *fiber.Ctx) error {
	id := c.Params("id")

	project, err := s.projectRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if project == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Project", id))
	}
	return c.JSON(project)
}

// AdminCreateProject handles POST /api/admin/projects
func (s *Server) AdminCreateProject(c *fiber.Ctx) error {
	var input service.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(c.UserContext(), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// AdminUpdateProject handles PUT /api/admin/projects/:id
func (s *Server) AdminUpdateProject(c *fiber.Ctx) error {
	id := c.Params("id")

	var input service.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.UpdateProject(c.UserContext(), id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// AdminDeleteProject handles DELETE /api/admin/projects/:id. Sections and
// images go with the project, atomically.
func (s *Server) AdminDeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.projectService.DeleteProject(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted",
	})
}

// AdminCreateSection handles POST /api/admin/projects/:id/sections
func (s *Server) AdminCreateSection(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var input service.SectionInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	section, err := s.projectService.CreateSection(c.UserContext(), projectID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(section)
}

// AdminUpdateSection handles PUT /api/admin/projects/:id/sections/:sectionId.
// Only the fields present in the body change.
func (s *Server) AdminUpdateSection(c *fiber.Ctx) error {
	projectID := c.Params("id")
	sectionID, err := parseUintParam(c, "sectionId")
	if err != nil {
		return respondServiceError(c, err)
	}

	updates, err := filterUpdates(c.Body(), "section_type", "title", "content", "order_index")
	if err != nil {
		return respondServiceError(c, err)
	}

	section, err := s.projectService.UpdateSection(c.UserContext(), projectID, sectionID, updates)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(section)
}

// AdminDeleteSection handles DELETE /api/admin/projects/:id/sections/:sectionId
func (s *Server) AdminDeleteSection(c *fiber.Ctx) error {
	projectID := c.Params("id")
	sectionID, err := parseUintParam(c, "sectionId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.projectService.DeleteSection(c.UserContext(), projectID, sectionID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Section deleted",
	})
}

// AdminReorderSections handles POST /api/admin/projects/:id/sections/reorder.
// It swaps the order_index of exactly the two named sections.
func (s *Server) AdminReorderSections(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var req struct {
		FirstID  uint `json:"first_id"`
		SecondID uint `json:"second_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.FirstID == 0 || req.SecondID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("first_id and second_id are required"))
	}

	if err := s.projectService.SwapSections(c.UserContext(), projectID, req.FirstID, req.SecondID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Sections reordered",
	})
}

// AdminCreateImage handles POST /api/admin/projects/:id/images
func (s *Server) AdminCreateImage(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var input service.ImageInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.projectService.CreateImage(c.UserContext(), projectID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// AdminUpdateImage handles PUT /api/admin/projects/:id/images/:imageId
func (s *Server) AdminUpdateImage(c *fiber.Ctx) error {
	projectID := c.Params("id")
	imageID, err := parseUintParam(c, "imageId")
	if err != nil {
		return respondServiceError(c, err)
	}

	updates, err := filterUpdates(c.Body(), "image_url", "caption", "order_index")
	if err != nil {
		return respondServiceError(c, err)
	}

	image, err := s.projectService.UpdateImage(c.UserContext(), projectID, imageID, updates)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(image)
}

// AdminDeleteImage handles DELETE /api/admin/projects/:id/images/:imageId
func (s *Server) AdminDeleteImage(c *fiber.Ctx) error {
	projectID := c.Params("id")
	imageID, err := parseUintParam(c, "imageId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.projectService.DeleteImage(c.UserContext(), projectID, imageID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Image deleted",
	})
}

// AdminReorderImages handles POST /api/admin/projects/:id/images/reorder
func (s *Server) AdminReorderImages(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var req struct {
		FirstID  uint `json:"first_id"`
		SecondID uint `json:"second_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.FirstID == 0 || req.SecondID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("first_id and second_id are required"))
	}

	if err := s.projectService.SwapImages(c.UserContext(), projectID, req.FirstID, req.SecondID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Images reordered",
	})
}
