package seeds

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/auth"
	"github.com/FolioForge/portfolio-backend/internal/content"
	"github.com/FolioForge/portfolio-backend/internal/settings"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixtures mirrors the layout of fixtures.yaml.
type Fixtures struct {
	Posts []struct {
		Title     string   `yaml:"title"`
		Excerpt   string   `yaml:"excerpt"`
		Body      string   `yaml:"body"`
		Tags      []string `yaml:"tags"`
		Published bool     `yaml:"published"`
	} `yaml:"posts"`
	Projects []struct {
		Title       string   `yaml:"title"`
		Summary     string   `yaml:"summary"`
		Description string   `yaml:"description"`
		Tech        []string `yaml:"tech"`
		RepoURL     string   `yaml:"repo_url"`
		LiveURL     string   `yaml:"live_url"`
		Featured    bool     `yaml:"featured"`
		SortOrder   int      `yaml:"sort_order"`
	} `yaml:"projects"`
	Testimonials []struct {
		Author      string `yaml:"author"`
		AuthorTitle string `yaml:"author_title"`
		Quote       string `yaml:"quote"`
		Approved    bool   `yaml:"approved"`
		SortOrder   int    `yaml:"sort_order"`
	} `yaml:"testimonials"`
	Pages []struct {
		Title     string `yaml:"title"`
		Body      string `yaml:"body"`
		Published bool   `yaml:"published"`
	} `yaml:"pages"`
	Settings map[string]string `yaml:"settings"`
}

// LoadFixtures parses the embedded sample content.
func LoadFixtures() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &f, nil
}

// SeedAll seeds the admin account and sample content. Idempotent: rows that
// already exist by their unique key are left untouched, so it is safe to run
// on every deploy.
func SeedAll(gdb *gorm.DB, hasher auth.Hasher) error {
	if err := SeedAdmin(gdb, hasher); err != nil {
		return err
	}

	fixtures, err := LoadFixtures()
	if err != nil {
		return err
	}

	if err := seedContent(gdb, fixtures); err != nil {
		return err
	}
	return seedSettings(gdb, fixtures)
}

// SeedAdmin creates the admin user when absent. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD, defaulting to the documented demo pair.
func SeedAdmin(gdb *gorm.DB, hasher auth.Hasher) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@portfolio.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	email = auth.NormalizeEmail(email)

	var existing auth.User
	err := gdb.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Site Admin",
		Role:         auth.RoleAdmin,
		Active:       true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("[seed] created admin user %s", email)
	return nil
}

func seedContent(gdb *gorm.DB, f *Fixtures) error {
	for _, p := range f.Posts {
		slug := content.Slugify(p.Title)
		var count int64
		gdb.Model(&content.Post{}).Where("slug = ?", slug).Count(&count)
		if count > 0 {
			continue
		}

		post := content.Post{
			Slug:      slug,
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Body:      p.Body,
			Tags:      pq.StringArray(p.Tags),
			Published: p.Published,
		}
		if p.Published {
			now := time.Now()
			post.PublishedAt = &now
		}
		if err := gdb.Create(&post).Error; err != nil {
			return fmt.Errorf("seeding post %q: %w", p.Title, err)
		}
	}

	for _, pr := range f.Projects {
		slug := content.Slugify(pr.Title)
		var count int64
		gdb.Model(&content.Project{}).Where("slug = ?", slug).Count(&count)
		if count > 0 {
			continue
		}

		project := content.Project{
			Slug:        slug,
			Title:       pr.Title,
			Summary:     pr.Summary,
			Description: pr.Description,
			Tech:        pq.StringArray(pr.Tech),
			RepoURL:     pr.RepoURL,
			LiveURL:     pr.LiveURL,
			Featured:    pr.Featured,
			SortOrder:   pr.SortOrder,
		}
		if err := gdb.Create(&project).Error; err != nil {
			return fmt.Errorf("seeding project %q: %w", pr.Title, err)
		}
	}

	for _, t := range f.Testimonials {
		var count int64
		gdb.Model(&content.Testimonial{}).Where("author = ? AND quote = ?", t.Author, t.Quote).Count(&count)
		if count > 0 {
			continue
		}

		testimonial := content.Testimonial{
			Author:      t.Author,
			AuthorTitle: t.AuthorTitle,
			Quote:       t.Quote,
			Approved:    t.Approved,
			SortOrder:   t.SortOrder,
		}
		if err := gdb.Create(&testimonial).Error; err != nil {
			return fmt.Errorf("seeding testimonial by %q: %w", t.Author, err)
		}
	}

	for _, pg := range f.Pages {
		slug := content.Slugify(pg.Title)
		var count int64
		gdb.Model(&content.Page{}).Where("slug = ?", slug).Count(&count)
		if count > 0 {
			continue
		}

		page := content.Page{
			Slug:      slug,
			Title:     pg.Title,
			Body:      pg.Body,
			Published: pg.Published,
		}
		if err := gdb.Create(&page).Error; err != nil {
			return fmt.Errorf("seeding page %q: %w", pg.Title, err)
		}
	}

	return nil
}

func seedSettings(gdb *gorm.DB, f *Fixtures) error {
	for key, value := range f.Settings {
		var count int64
		gdb.Model(&settings.Setting{}).Where("key = ?", key).Count(&count)
		if count > 0 {
			continue
		}

		if err := gdb.Create(&settings.Setting{Key: key, Value: value}).Error; err != nil {
			return fmt.Errorf("seeding setting %q: %w", key, err)
		}
	}
	return nil
}
