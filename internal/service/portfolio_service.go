package service

import (
	"context"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/rs/zerolog"
)

// portfolioService is the concrete implementation of PortfolioService
type portfolioService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newPortfolioService(repos *repository.Repositories, log zerolog.Logger) *portfolioService {
	return &portfolioService{
		repos: repos,
		log:   log.With().Str("service", "portfolio").Logger(),
	}
}

// GetPortfolio assembles every public section. A missing personal info row
// leaves PersonalInfo nil.
func (s *portfolioService) GetPortfolio(ctx context.Context) (*models.Portfolio, error) {
	info, err := s.repos.Portfolio.GetPersonalInfo(ctx)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}
	links, err := s.repos.Portfolio.ListSocialLinks(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.repos.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.repos.Skills.List(ctx)
	if err != nil {
		return nil, err
	}
	experiences, err := s.repos.Portfolio.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	education, err := s.repos.Portfolio.ListEducation(ctx)
	if err != nil {
		return nil, err
	}

	featured := []models.Project{}
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}

	return &models.Portfolio{
		PersonalInfo:     info,
		SocialLinks:      links,
		FeaturedProjects: featured,
		Projects:         projects,
		Skills:           GroupSkills(withLevelLabels(skills)),
		Experiences:      experiences,
		Education:        education,
	}, nil
}

func (s *portfolioService) ListProjects(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	if featuredOnly {
		return s.repos.Projects.ListFeatured(ctx)
	}
	return s.repos.Projects.List(ctx)
}

func (s *portfolioService) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	var skills []models.Skill
	var err error
	if category == "" {
		skills, err = s.repos.Skills.List(ctx)
	} else {
		skills, err = s.repos.Skills.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}
	return withLevelLabels(skills), nil
}

func (s *portfolioService) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	return s.repos.Portfolio.ListExperiences(ctx)
}

func (s *portfolioService) ListEducation(ctx context.Context) ([]models.Education, error) {
	return s.repos.Portfolio.ListEducation(ctx)
}

func (s *portfolioService) ListPublishedPosts(ctx context.Context) ([]models.Post, error) {
	return s.repos.Posts.ListPublished(ctx)
}

func (s *portfolioService) GetPublishedPost(ctx context.Context, slug string) (*models.Post, error) {
	return s.repos.Posts.GetPublishedBySlug(ctx, slug)
}

// withLevelLabels sets the display label of each skill in place.
func withLevelLabels(skills []models.Skill) []models.Skill {
	for i := range skills {
		skills[i].LevelLabel = models.SkillLevelLabel(skills[i].Level)
	}
	return skills
}

// GroupSkills buckets skills by category, in display order. Empty
// categories are left out; skills keep their relative order.
func GroupSkills(skills []models.Skill) []models.SkillGroup {
	byCategory := make(map[string][]models.Skill)
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	groups := []models.SkillGroup{}
	for _, category := range models.SkillCategories {
		if list := byCategory[category]; len(list) > 0 {
			groups = append(groups, models.SkillGroup{Category: category, Skills: list})
		}
	}
	return groups
}
