package models

import (
	"strings"
	"time"
)

// Skill represents a technical skill with a 1-10 level
type Skill struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Level     int       `json:"level" db:"level"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// LevelLabel is filled in for the public site only.
	LevelLabel string `json:"level_label,omitempty" db:"-"`
}

// Skill level bounds
const (
	MinSkillLevel = 1
	MaxSkillLevel = 10
)

// SkillCategories lists the allowed skill categories in display order
var SkillCategories = []string{
	"Game Engines",
	"Programming Languages",
	"Art & Design",
	"Databases",
	"Tools & Software",
	"Frameworks",
	"Other",
}

// ValidSkillCategories is SkillCategories as a lookup set
var ValidSkillCategories = func() map[string]bool {
	m := make(map[string]bool, len(SkillCategories))
	for _, c := range SkillCategories {
		m[c] = true
	}
	return m
}()

// SkillLevelLabel returns the display label for a skill level.
func SkillLevelLabel(level int) string {
	switch {
	case level >= 9:
		return "Expert"
	case level >= 7:
		return "Avancé"
	case level >= 5:
		return "Intermédiaire"
	default:
		return "Débutant"
	}
}

// SkillForm holds the editable fields of a skill
type SkillForm struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// DefaultSkillForm is the form shown when adding a skill.
func DefaultSkillForm() SkillForm {
	return SkillForm{
		Category: SkillCategories[0],
		Level:    5,
		Icon:     "code",
		Color:    "blue",
	}
}

// Valid reports whether the form can be saved.
func (f SkillForm) Valid() bool {
	return strings.TrimSpace(f.Name) != "" &&
		ValidSkillCategories[f.Category] &&
		f.Level >= MinSkillLevel && f.Level <= MaxSkillLevel
}

// FormFromSkill copies the mutable fields of s into a new form.
func FormFromSkill(s Skill) SkillForm {
	return SkillForm{
		Name:     s.Name,
		Category: s.Category,
		Level:    s.Level,
		Icon:     s.Icon,
		Color:    s.Color,
	}
}

// ApplyTo returns s with the form's fields written over it.
func (f SkillForm) ApplyTo(s Skill) Skill {
	s.Name = strings.TrimSpace(f.Name)
	s.Category = f.Category
	s.Level = f.Level
	s.Icon = f.Icon
	s.Color = f.Color
	return s
}
