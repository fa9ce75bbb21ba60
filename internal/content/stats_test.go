package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/models"
	"github.com/rs/zerolog"
)

func TestAggregate_Projects(t *testing.T) {
	now := testNow
	projects := []models.Project{
		{ID: 1, Featured: true, DemoURL: "https://demo", CreatedAt: now.Add(-time.Hour)},
		{ID: 2, SourceURL: "https://git", CreatedAt: now.Add(-6 * 24 * time.Hour)},
		{ID: 3, Featured: true, CreatedAt: now.Add(-8 * 24 * time.Hour)},
		{ID: 4, CreatedAt: now.Add(-content.RecentWindow)},
		{ID: 5, CreatedAt: now.Add(time.Hour)},
	}

	stats := content.Aggregate(content.ProjectKind(), projects, now)

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	want := map[string]int{"featured": 2, "with_demo": 1, "with_source": 1}
	for name, n := range want {
		if stats.Counts[name] != n {
			t.Errorf("Counts[%s] = %d, want %d", name, stats.Counts[name], n)
		}
	}
	// boundary is inclusive; future items are not recent
	if stats.Recent != 3 {
		t.Errorf("Recent = %d, want 3", stats.Recent)
	}
}

func TestAggregate_EmptyListReportsEveryCounter(t *testing.T) {
	stats := content.Aggregate(content.PostKind(), nil, testNow)

	if stats.Total != 0 || stats.Recent != 0 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	for _, name := range []string{"published", "drafts"} {
		n, ok := stats.Counts[name]
		if !ok || n != 0 {
			t.Errorf("Counts[%s] = %d (present=%v), want 0", name, n, ok)
		}
	}
}

func TestAggregate_SkillLevels(t *testing.T) {
	skills := []models.Skill{
		{ID: 1, Level: 10}, {ID: 2, Level: 9}, {ID: 3, Level: 8},
		{ID: 4, Level: 7}, {ID: 5, Level: 6}, {ID: 6, Level: 5}, {ID: 7, Level: 3},
	}

	stats := content.Aggregate(content.SkillKind(), skills, testNow)

	want := map[string]int{"expert": 2, "advanced": 2, "intermediate": 2}
	for name, n := range want {
		if stats.Counts[name] != n {
			t.Errorf("Counts[%s] = %d, want %d", name, stats.Counts[name], n)
		}
	}
}

func TestManager_StatsFollowMutations(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockMessageRepository(
		models.ContactMessage{ID: 1, Name: "Ada", CreatedAt: testNow.Add(-time.Hour)},
		models.ContactMessage{ID: 2, Name: "Bob", Replied: true, CreatedAt: testNow.Add(-30 * 24 * time.Hour)},
	)
	m := content.NewManager(content.MessageKind(), repo, zerolog.Nop())
	m.SetClock(fixedClock(testNow))

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Counts["unread"] != 1 || stats.Counts["starred"] != 0 || stats.Recent != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if _, err := m.Toggle(ctx, 1, content.FlagStarred); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	stats, _ = m.Stats(ctx)
	if stats.Counts["starred"] != 1 {
		t.Errorf("starred count not recomputed: %+v", stats)
	}
}
