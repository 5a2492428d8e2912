package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/utils"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ListPosts returns published posts, newest first, optionally filtered by tag.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := h.db.WithContext(r.Context()).
		Where("published = ?", true).
		Order("published_at DESC")

	if tag := r.URL.Query().Get("tag"); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	var posts []Post
	if err := query.Find(&posts).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	utils.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var post Post
	err := h.db.WithContext(r.Context()).
		First(&post, "slug = ? AND published = ?", slug, true).Error
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, post)
}

type postInput struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Title == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}

	post := Post{
		Slug:      Slugify(input.Title),
		Title:     input.Title,
		Excerpt:   input.Excerpt,
		Body:      input.Body,
		Tags:      pq.StringArray(input.Tags),
		Published: input.Published,
	}
	if input.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := h.db.WithContext(r.Context()).Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.WriteError(w, http.StatusConflict, "A post with this slug already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var post Post
	if err := h.db.WithContext(r.Context()).First(&post, "slug = ?", slug).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post.Title = input.Title
	post.Excerpt = input.Excerpt
	post.Body = input.Body
	post.Tags = pq.StringArray(input.Tags)
	if input.Published && !post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.Published = input.Published

	if err := h.db.WithContext(r.Context()).Save(&post).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result := h.db.WithContext(r.Context()).Delete(&Post{}, "slug = ?", slug)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProjects returns projects in display order; ?featured=true narrows to
// the home-page set.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := h.db.WithContext(r.Context()).Order("sort_order ASC, created_at DESC")

	if r.URL.Query().Get("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var projects []Project
	if err := query.Find(&projects).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	utils.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var project Project
	if err := h.db.WithContext(r.Context()).First(&project, "slug = ?", slug).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, project)
}

type projectInput struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	RepoURL     string   `json:"repo_url"`
	LiveURL     string   `json:"live_url"`
	Featured    bool     `json:"featured"`
	SortOrder   int      `json:"sort_order"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Title == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}

	project := Project{
		Slug:        Slugify(input.Title),
		Title:       input.Title,
		Summary:     input.Summary,
		Description: input.Description,
		Tech:        pq.StringArray(input.Tech),
		RepoURL:     input.RepoURL,
		LiveURL:     input.LiveURL,
		Featured:    input.Featured,
		SortOrder:   input.SortOrder,
	}

	if err := h.db.WithContext(r.Context()).Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.WriteError(w, http.StatusConflict, "A project with this slug already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var project Project
	if err := h.db.WithContext(r.Context()).First(&project, "slug = ?", slug).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project.Title = input.Title
	project.Summary = input.Summary
	project.Description = input.Description
	project.Tech = pq.StringArray(input.Tech)
	project.RepoURL = input.RepoURL
	project.LiveURL = input.LiveURL
	project.Featured = input.Featured
	project.SortOrder = input.SortOrder

	if err := h.db.WithContext(r.Context()).Save(&project).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	utils.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result := h.db.WithContext(r.Context()).Delete(&Project{}, "slug = ?", slug)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTestimonials returns approved testimonials; admins pass ?all=true to
// review the queue.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	query := h.db.WithContext(r.Context()).Order("sort_order ASC, created_at DESC")

	if r.URL.Query().Get("all") == "true" {
		role, _ := utils.GetRoleFromContext(r.Context())
		if role != "admin" {
			utils.WriteError(w, http.StatusForbidden, "Admin access required")
			return
		}
	} else {
		query = query.Where("approved = ?", true)
	}

	var testimonials []Testimonial
	if err := query.Find(&testimonials).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}

	utils.WriteJSON(w, http.StatusOK, testimonials)
}

type testimonialInput struct {
	Author      string `json:"author"`
	AuthorTitle string `json:"author_title"`
	Quote       string `json:"quote"`
	Approved    bool   `json:"approved"`
	SortOrder   int    `json:"sort_order"`
}

func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var input testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Author == "" || input.Quote == "" {
		utils.WriteError(w, http.StatusBadRequest, "Author and quote are required")
		return
	}

	testimonial := Testimonial{
		Author:      input.Author,
		AuthorTitle: input.AuthorTitle,
		Quote:       input.Quote,
		Approved:    input.Approved,
		SortOrder:   input.SortOrder,
	}

	if err := h.db.WithContext(r.Context()).Create(&testimonial).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, testimonial)
}

func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var testimonial Testimonial
	if err := h.db.WithContext(r.Context()).First(&testimonial, "id = ?", id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	var input testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	testimonial.Author = input.Author
	testimonial.AuthorTitle = input.AuthorTitle
	testimonial.Quote = input.Quote
	testimonial.Approved = input.Approved
	testimonial.SortOrder = input.SortOrder

	if err := h.db.WithContext(r.Context()).Save(&testimonial).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}

	utils.WriteJSON(w, http.StatusOK, testimonial)
}

func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := h.db.WithContext(r.Context()).Delete(&Testimonial{}, "id = ?", id)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var page Page
	err := h.db.WithContext(r.Context()).
		First(&page, "slug = ? AND published = ?", slug, true).Error
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Page not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	var pages []Page
	if err := h.db.WithContext(r.Context()).Order("slug ASC").Find(&pages).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch pages")
		return
	}

	utils.WriteJSON(w, http.StatusOK, pages)
}

type pageInput struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var input pageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Title == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}

	page := Page{
		Slug:      Slugify(input.Title),
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
	}

	if err := h.db.WithContext(r.Context()).Create(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.WriteError(w, http.StatusConflict, "A page with this slug already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create page")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, page)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var page Page
	if err := h.db.WithContext(r.Context()).First(&page, "slug = ?", slug).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Page not found")
		return
	}

	var input pageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	page.Title = input.Title
	page.Body = input.Body
	page.Published = input.Published

	if err := h.db.WithContext(r.Context()).Save(&page).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update page")
		return
	}

	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result := h.db.WithContext(r.Context()).Delete(&Page{}, "slug = ?", slug)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete page")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Page not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
