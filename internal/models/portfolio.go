package models

import "time"

// PersonalInfo is the hero section content
type PersonalInfo struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Title     string `json:"title" db:"title"`
	Bio       string `json:"bio" db:"bio"`
	Email     string `json:"email" db:"email"`
	Location  string `json:"location" db:"location"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
	ResumeURL string `json:"resume_url" db:"resume_url"`
}

// SocialLink is a profile link shown in the hero and footer
type SocialLink struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	URL      string `json:"url" db:"url"`
	Icon     string `json:"icon" db:"icon"`
	Position int    `json:"position" db:"position"`
}

// Experience is a work experience entry
type Experience struct {
	ID           int64      `json:"id" db:"id"`
	Company      string     `json:"company" db:"company"`
	Position     string     `json:"position" db:"position"`
	Description  string     `json:"description" db:"description"`
	Location     string     `json:"location" db:"location"`
	Logo         string     `json:"logo" db:"logo"`
	Technologies []string   `json:"technologies" db:"technologies"`
	Achievements []string   `json:"achievements" db:"achievements"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	Current      bool       `json:"current" db:"current"`
}

// Education is an education entry
type Education struct {
	ID          int64      `json:"id" db:"id"`
	Institution string     `json:"institution" db:"institution"`
	Degree      string     `json:"degree" db:"degree"`
	Field       string     `json:"field" db:"field"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location"`
	Logo        string     `json:"logo" db:"logo"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
}

// SkillGroup is the skills of one category, strongest first
type SkillGroup struct {
	Category string  `json:"category"`
	Skills   []Skill `json:"skills"`
}

// Portfolio aggregates every public section of the site
type Portfolio struct {
	PersonalInfo     *PersonalInfo `json:"personal_info"`
	SocialLinks      []SocialLink  `json:"social_links"`
	FeaturedProjects []Project     `json:"featured_projects"`
	Projects         []Project     `json:"projects"`
	Skills           []SkillGroup  `json:"skills"`
	Experiences      []Experience  `json:"experiences"`
	Education        []Education   `json:"education"`
}
