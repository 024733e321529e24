// Package seed populates the database with demo portfolio content for local
// development.
package seed

import (
	"fmt"
	"strings"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder generates demo data.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder with a fixed random seed so reruns produce the
// same data.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:    db,
		faker: gofakeit.New(42),
	}
}

// ClearAll removes all seeded content. Children first so the deletes also
// work against a store with enforced foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.ProjectSection{},
		&models.ProjectImage{},
		&models.Project{},
		&models.ContactMessage{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedProjects creates count demo projects, each with ordered sections and
// gallery images. Roughly a third are featured.
func (s *Seeder) SeedProjects(count int) ([]*models.Project, error) {
	statuses := []models.ProjectStatus{
		models.ProjectStatusCompleted,
		models.ProjectStatusCompleted,
		models.ProjectStatusInProgress,
		models.ProjectStatusPlanned,
	}

	projects := make([]*models.Project, 0, count)
	for i := 0; i < count; i++ {
		name := s.faker.AppName()
		slug := fmt.Sprintf("%s-%d", slugify(name), i)
		role := s.faker.JobTitle()
		arch := s.faker.LoremIpsumSentence(12)
		github := "https://github.com/" + s.faker.Username() + "/" + slug
		live := "https://" + slug + ".example.com"

		project := &models.Project{
			Title:            name,
			Slug:             slug,
			ShortDescription: s.faker.LoremIpsumSentence(10),
			FullDescription:  s.faker.Paragraph(2, 4, 12, " "),
			Role:             &role,
			Architecture:     &arch,
			TechStack:        s.techStack(),
			GithubURL:        &github,
			LiveURL:          &live,
			IsFeatured:       i%3 == 0,
			Status:           statuses[i%len(statuses)],
		}
		if err := s.db.Create(project).Error; err != nil {
			return nil, fmt.Errorf("create project %q: %w", slug, err)
		}

		if err := s.seedSections(project); err != nil {
			return nil, err
		}
		if err := s.seedImages(project); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *Seeder) seedSections(project *models.Project) error {
	types := []string{"text", "text", "code", "quote"}
	n := s.faker.Number(2, 4)
	for i := 0; i < n; i++ {
		order := i
		title := s.faker.LoremIpsumSentence(4)
		content := s.faker.Paragraph(1, 3, 15, " ")
		section := &models.ProjectSection{
			ProjectID:   project.ID,
			SectionType: types[i%len(types)],
			Title:       &title,
			Content:     &content,
			OrderIndex:  &order,
		}
		if err := s.db.Create(section).Error; err != nil {
			return fmt.Errorf("create section for %q: %w", project.Slug, err)
		}
	}
	return nil
}

func (s *Seeder) seedImages(project *models.Project) error {
	n := s.faker.Number(1, 3)
	for i := 0; i < n; i++ {
		order := i
		caption := s.faker.LoremIpsumSentence(5)
		image := &models.ProjectImage{
			ProjectID:  project.ID,
			ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s-%d/1200/800", project.Slug, i),
			Caption:    &caption,
			OrderIndex: &order,
		}
		if err := s.db.Create(image).Error; err != nil {
			return fmt.Errorf("create image for %q: %w", project.Slug, err)
		}
	}
	return nil
}

// SeedMessages creates count demo contact messages across all triage states.
func (s *Seeder) SeedMessages(count int) error {
	statuses := []models.MessageStatus{
		models.MessageStatusNew,
		models.MessageStatusNew,
		models.MessageStatusRead,
		models.MessageStatusReplied,
		models.MessageStatusArchived,
	}

	for i := 0; i < count; i++ {
		ip := s.faker.IPv4Address()
		ua := s.faker.UserAgent()
		msg := &models.ContactMessage{
			FullName:  s.faker.Name(),
			Email:     s.faker.Email(),
			Subject:   s.faker.LoremIpsumSentence(5),
			Message:   s.faker.Paragraph(1, 2, 15, " "),
			Status:    statuses[i%len(statuses)],
			IPAddress: &ip,
			UserAgent: &ua,
		}
		if err := s.db.Create(msg).Error; err != nil {
			return fmt.Errorf("create contact message: %w", err)
		}
	}
	return nil
}

func (s *Seeder) techStack() models.StringList {
	pool := []string{"Go", "TypeScript", "React", "Next.js", "PostgreSQL", "Redis", "Docker", "Fiber", "GORM", "Tailwind"}
	n := s.faker.Number(2, 5)
	idx := indices(len(pool))
	s.faker.ShuffleInts(idx)

	stack := make(models.StringList, 0, n)
	for _, i := range idx[:n] {
		stack = append(stack, pool[i])
	}
	return stack
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
