package content

import (
	"time"

	"github.com/portfolio-api/internal/models"
)

// Kind names, as used in admin routes.
const (
	KindProjects = "projects"
	KindPosts    = "posts"
	KindSkills   = "skills"
	KindMessages = "messages"
)

// Flag names.
const (
	FlagFeatured  = "featured"
	FlagPublished = "published"
	FlagStarred   = "starred"
	FlagReplied   = "replied"
)

// ProjectKind describes portfolio projects.
func ProjectKind() Kind[models.Project, models.ProjectForm] {
	return Kind[models.Project, models.ProjectForm]{
		Name:    KindProjects,
		ID:      func(p models.Project) int64 { return p.ID },
		WithID:  func(p models.Project, id int64) models.Project { p.ID = id; return p },
		Created: func(p models.Project) time.Time { return p.CreatedAt },
		Touch:   func(p models.Project, now time.Time) models.Project { p.UpdatedAt = now; return p },
		Searchable: func(p models.Project) []string {
			return append([]string{p.Title, p.Description}, p.Technologies...)
		},
		Facets: []string{"featured", "regular"},
		Facet: func(p models.Project, facet string) bool {
			switch facet {
			case "featured":
				return p.Featured
			case "regular":
				return !p.Featured
			}
			return false
		},
		Stats: []Stat[models.Project]{
			{Name: "featured", Match: func(p models.Project) bool { return p.Featured }},
			{Name: "with_demo", Match: func(p models.Project) bool { return p.DemoURL != "" }},
			{Name: "with_source", Match: func(p models.Project) bool { return p.SourceURL != "" }},
		},
		Flags: map[string]func(models.Project, time.Time) models.Project{
			FlagFeatured: func(p models.Project, _ time.Time) models.Project {
				p.Featured = !p.Featured
				return p
			},
		},
		Defaults: func() models.ProjectForm { return models.ProjectForm{Technologies: []string{}} },
		FromItem: models.FormFromProject,
		Valid:    models.ProjectForm.Valid,
		Build: func(f models.ProjectForm, now time.Time) models.Project {
			return f.ApplyTo(models.Project{CreatedAt: now, UpdatedAt: now})
		},
		Apply: func(p models.Project, f models.ProjectForm, _ time.Time) models.Project {
			return f.ApplyTo(p)
		},
	}
}

// PostKind describes blog posts.
func PostKind() Kind[models.Post, models.PostForm] {
	return Kind[models.Post, models.PostForm]{
		Name:    KindPosts,
		ID:      func(p models.Post) int64 { return p.ID },
		WithID:  func(p models.Post, id int64) models.Post { p.ID = id; return p },
		Created: func(p models.Post) time.Time { return p.CreatedAt },
		Touch:   func(p models.Post, now time.Time) models.Post { p.UpdatedAt = now; return p },
		Searchable: func(p models.Post) []string {
			return append([]string{p.Title, p.Content}, p.Tags...)
		},
		Facets: []string{"published", "draft"},
		Facet: func(p models.Post, facet string) bool {
			switch facet {
			case "published":
				return p.Published
			case "draft":
				return !p.Published
			}
			return false
		},
		Stats: []Stat[models.Post]{
			{Name: "published", Match: func(p models.Post) bool { return p.Published }},
			{Name: "drafts", Match: func(p models.Post) bool { return !p.Published }},
		},
		Flags: map[string]func(models.Post, time.Time) models.Post{
			FlagPublished: func(p models.Post, now time.Time) models.Post {
				p.Published = !p.Published
				if p.Published {
					stamp := now
					p.PublishedAt = &stamp
				} else {
					p.PublishedAt = nil
				}
				return p
			},
		},
		Defaults: func() models.PostForm { return models.PostForm{Tags: []string{}} },
		FromItem: models.FormFromPost,
		Valid:    models.PostForm.Valid,
		Build: func(f models.PostForm, now time.Time) models.Post {
			return f.ApplyTo(models.Post{CreatedAt: now, UpdatedAt: now}, now)
		},
		Apply: func(p models.Post, f models.PostForm, now time.Time) models.Post {
			return f.ApplyTo(p, now)
		},
	}
}

// SkillKind describes skills. Each skill category is a facet.
func SkillKind() Kind[models.Skill, models.SkillForm] {
	return Kind[models.Skill, models.SkillForm]{
		Name:    KindSkills,
		ID:      func(s models.Skill) int64 { return s.ID },
		WithID:  func(s models.Skill, id int64) models.Skill { s.ID = id; return s },
		Created: func(s models.Skill) time.Time { return s.CreatedAt },
		Touch:   func(s models.Skill, now time.Time) models.Skill { s.UpdatedAt = now; return s },
		Searchable: func(s models.Skill) []string {
			return []string{s.Name, s.Category}
		},
		Facets: models.SkillCategories,
		Facet: func(s models.Skill, facet string) bool {
			return s.Category == facet
		},
		Stats: []Stat[models.Skill]{
			{Name: "expert", Match: func(s models.Skill) bool { return s.Level >= 9 }},
			{Name: "advanced", Match: func(s models.Skill) bool { return s.Level >= 7 && s.Level < 9 }},
			{Name: "intermediate", Match: func(s models.Skill) bool { return s.Level >= 5 && s.Level < 7 }},
		},
		Flags:    map[string]func(models.Skill, time.Time) models.Skill{},
		Defaults: models.DefaultSkillForm,
		FromItem: models.FormFromSkill,
		Valid:    models.SkillForm.Valid,
		Build: func(f models.SkillForm, now time.Time) models.Skill {
			return f.ApplyTo(models.Skill{CreatedAt: now, UpdatedAt: now})
		},
		Apply: func(s models.Skill, f models.SkillForm, _ time.Time) models.Skill {
			return f.ApplyTo(s)
		},
	}
}

// NoForm is the form type of kinds that are never edited through a form.
type NoForm struct{}

// MessageKind describes contact messages. Messages arrive through the
// public contact endpoint, so the kind has no form.
func MessageKind() Kind[models.ContactMessage, NoForm] {
	return Kind[models.ContactMessage, NoForm]{
		Name:    KindMessages,
		ID:      func(m models.ContactMessage) int64 { return m.ID },
		WithID:  func(m models.ContactMessage, id int64) models.ContactMessage { m.ID = id; return m },
		Created: func(m models.ContactMessage) time.Time { return m.CreatedAt },
		Touch: func(m models.ContactMessage, now time.Time) models.ContactMessage {
			m.UpdatedAt = now
			return m
		},
		Searchable: func(m models.ContactMessage) []string {
			return []string{m.Name, m.Email, m.Subject}
		},
		Facets: []string{"unread", "read", "starred"},
		Facet: func(m models.ContactMessage, facet string) bool {
			switch facet {
			case "unread":
				return !m.Replied
			case "read":
				return m.Replied
			case "starred":
				return m.Starred
			}
			return false
		},
		Stats: []Stat[models.ContactMessage]{
			{Name: "unread", Match: func(m models.ContactMessage) bool { return !m.Replied }},
			{Name: "starred", Match: func(m models.ContactMessage) bool { return m.Starred }},
		},
		Flags: map[string]func(models.ContactMessage, time.Time) models.ContactMessage{
			FlagStarred: func(m models.ContactMessage, _ time.Time) models.ContactMessage {
				m.Starred = !m.Starred
				return m
			},
			FlagReplied: func(m models.ContactMessage, _ time.Time) models.ContactMessage {
				m.Replied = !m.Replied
				return m
			},
		},
	}
}
