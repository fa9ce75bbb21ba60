package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Post represents a blog post
type Post struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Content     string     `json:"content" db:"content"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	Image       string     `json:"image" db:"image"`
	Published   bool       `json:"published" db:"published"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	Tags        []string   `json:"tags" db:"tags"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// PostForm holds the editable fields of a blog post.
//
// The slug follows the title until it is set directly; from then on it
// stays as the user wrote it.
type PostForm struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	Image      string   `json:"image"`
	Published  bool     `json:"published"`
	Tags       []string `json:"tags"`
	SlugLocked bool     `json:"slug_locked"`
}

// SetTitle updates the title and, unless the slug was edited by hand,
// re-derives the slug from it.
func (f *PostForm) SetTitle(title string) {
	f.Title = title
	if !f.SlugLocked {
		f.Slug = Slugify(title)
	}
}

// SetSlug records a hand-written slug and stops deriving it from the title.
func (f *PostForm) SetSlug(slug string) {
	f.Slug = slug
	f.SlugLocked = true
}

// UnmarshalJSON applies a partial update. Only keys present in data are
// changed, and title/slug go through SetTitle/SetSlug.
func (f *PostForm) UnmarshalJSON(data []byte) error {
	var patch struct {
		Title     *string   `json:"title"`
		Slug      *string   `json:"slug"`
		Content   *string   `json:"content"`
		Excerpt   *string   `json:"excerpt"`
		Image     *string   `json:"image"`
		Published *bool     `json:"published"`
		Tags      *[]string `json:"tags"`
	}
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}

	if patch.Title != nil {
		f.SetTitle(*patch.Title)
	}
	if patch.Slug != nil {
		f.SetSlug(*patch.Slug)
	}
	if patch.Content != nil {
		f.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		f.Excerpt = *patch.Excerpt
	}
	if patch.Image != nil {
		f.Image = *patch.Image
	}
	if patch.Published != nil {
		f.Published = *patch.Published
	}
	if patch.Tags != nil {
		f.Tags = cloneStrings(*patch.Tags)
	}
	return nil
}

// Valid reports whether the required fields are present.
func (f PostForm) Valid() bool {
	return strings.TrimSpace(f.Title) != "" && strings.TrimSpace(f.Content) != ""
}

// FormFromPost copies the mutable fields of p into a new form.
func FormFromPost(p Post) PostForm {
	return PostForm{
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Image:     p.Image,
		Published: p.Published,
		Tags:      cloneStrings(p.Tags),
	}
}

// ApplyTo returns p with the form's fields written over it. An empty slug is
// derived from the title. PublishedAt is stamped with now when the post
// becomes published without a previous publication date, and cleared when it
// is unpublished.
func (f PostForm) ApplyTo(p Post, now time.Time) Post {
	wasPublished := p.Published

	p.Title = strings.TrimSpace(f.Title)
	p.Slug = strings.TrimSpace(f.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Content = f.Content
	p.Excerpt = f.Excerpt
	p.Image = f.Image
	p.Published = f.Published
	p.Tags = cloneStrings(f.Tags)

	switch {
	case !p.Published:
		p.PublishedAt = nil
	case !wasPublished && p.PublishedAt == nil:
		stamp := now
		p.PublishedAt = &stamp
	}
	return p
}
