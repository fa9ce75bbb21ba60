package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Project represents a portfolio project
type Project struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	ShortDescription string    `json:"short_description" db:"short_description"`
	Image            string    `json:"image" db:"image"`
	DemoURL          string    `json:"demo_url" db:"demo_url"`
	SourceURL        string    `json:"source_url" db:"source_url"`
	Technologies     []string  `json:"technologies" db:"technologies"`
	Featured         bool      `json:"featured" db:"featured"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectForm holds the editable fields of a project
type ProjectForm struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description"`
	Image            string   `json:"image"`
	DemoURL          string   `json:"demo_url"`
	SourceURL        string   `json:"source_url"`
	Technologies     []string `json:"technologies"`
	Featured         bool     `json:"featured"`
}

// Valid reports whether the required fields are present.
func (f ProjectForm) Valid() bool {
	return strings.TrimSpace(f.Title) != "" && strings.TrimSpace(f.Description) != ""
}

// UnmarshalJSON applies a partial update. Only keys present in data are
// changed; a body that fails to decode changes nothing.
func (f *ProjectForm) UnmarshalJSON(data []byte) error {
	var patch struct {
		Title            *string   `json:"title"`
		Description      *string   `json:"description"`
		ShortDescription *string   `json:"short_description"`
		Image            *string   `json:"image"`
		DemoURL          *string   `json:"demo_url"`
		SourceURL        *string   `json:"source_url"`
		Technologies     *[]string `json:"technologies"`
		Featured         *bool     `json:"featured"`
	}
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}

	if patch.Title != nil {
		f.Title = *patch.Title
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.ShortDescription != nil {
		f.ShortDescription = *patch.ShortDescription
	}
	if patch.Image != nil {
		f.Image = *patch.Image
	}
	if patch.DemoURL != nil {
		f.DemoURL = *patch.DemoURL
	}
	if patch.SourceURL != nil {
		f.SourceURL = *patch.SourceURL
	}
	if patch.Technologies != nil {
		f.Technologies = cloneStrings(*patch.Technologies)
	}
	if patch.Featured != nil {
		f.Featured = *patch.Featured
	}
	return nil
}

// FormFromProject copies the mutable fields of p into a new form.
func FormFromProject(p Project) ProjectForm {
	return ProjectForm{
		Title:            p.Title,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Image:            p.Image,
		DemoURL:          p.DemoURL,
		SourceURL:        p.SourceURL,
		Technologies:     cloneStrings(p.Technologies),
		Featured:         p.Featured,
	}
}

// ApplyTo returns p with the form's fields written over it.
func (f ProjectForm) ApplyTo(p Project) Project {
	p.Title = strings.TrimSpace(f.Title)
	p.Description = strings.TrimSpace(f.Description)
	p.ShortDescription = f.ShortDescription
	p.Image = f.Image
	p.DemoURL = f.DemoURL
	p.SourceURL = f.SourceURL
	p.Technologies = cloneStrings(f.Technologies)
	p.Featured = f.Featured
	return p
}

// cloneStrings copies a string slice, normalizing nil to empty.
func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
