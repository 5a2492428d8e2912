package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Post is a blog entry. Slug is derived from the title at creation time and
// is the public lookup key.
type Post struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Excerpt     string         `json:"excerpt"`
	Body        string         `json:"body"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Published   bool           `gorm:"default:false" json:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Post) TableName() string {
	return "content.posts"
}

// Project is a portfolio entry.
type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Tech        pq.StringArray `gorm:"type:text[]" json:"tech"`
	RepoURL     string         `json:"repo_url"`
	LiveURL     string         `json:"live_url"`
	Featured    bool           `gorm:"default:false" json:"featured"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Project) TableName() string {
	return "content.projects"
}

// Testimonial is a quote shown on the site once approved.
type Testimonial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Author      string    `gorm:"not null" json:"author"`
	AuthorTitle string    `json:"author_title"`
	Quote       string    `gorm:"not null" json:"quote"`
	Approved    bool      `gorm:"default:false" json:"approved"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "content.testimonials"
}

// Page is free-form site copy (about, contact, ...) addressed by slug.
type Page struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `json:"body"`
	Published bool      `gorm:"default:false" json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string {
	return "content.pages"
}
