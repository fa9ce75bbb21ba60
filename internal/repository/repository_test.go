package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

func TestMockProjectRepository_CreateAssignsNextID(t *testing.T) {
	repo := mocks.NewMockProjectRepository(
		models.Project{ID: 3, Title: "Three"},
		models.Project{ID: 7, Title: "Seven"},
	)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Project{Title: "Next"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 8 {
		t.Errorf("Expected id 8, got %d", created.ID)
	}

	if _, err := repo.Create(ctx, models.Project{ID: 3, Title: "Clash"}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Expected ErrConflict for a duplicate id, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 projects, got %d", count)
	}
}

func TestMockProjectRepository_ListFeatured(t *testing.T) {
	repo := mocks.NewMockProjectRepository(
		models.Project{ID: 1, Title: "A", Featured: true},
		models.Project{ID: 2, Title: "B"},
		models.Project{ID: 3, Title: "C", Featured: true},
	)

	featured, err := repo.ListFeatured(context.Background())
	if err != nil {
		t.Fatalf("ListFeatured failed: %v", err)
	}
	if len(featured) != 2 {
		t.Errorf("Expected 2 featured projects, got %d", len(featured))
	}
}

func TestMockProjectRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := mocks.NewMockProjectRepository(models.Project{ID: 1, Title: "A"})
	ctx := context.Background()

	if _, err := repo.Update(ctx, models.Project{ID: 9, Title: "Missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, 9); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestMockPostRepository_SlugsAreUnique(t *testing.T) {
	repo := mocks.NewMockPostRepository(models.Post{ID: 1, Title: "Hello", Slug: "hello"})
	ctx := context.Background()

	if _, err := repo.Create(ctx, models.Post{Title: "Hello again", Slug: "hello"}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}

	// Updating a post with its own slug is fine
	if _, err := repo.Update(ctx, models.Post{ID: 1, Title: "Hello!", Slug: "hello"}); err != nil {
		t.Errorf("Update failed: %v", err)
	}
}

func TestMockPostRepository_PublishedOnly(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	repo := mocks.NewMockPostRepository(
		models.Post{ID: 1, Slug: "old", Published: true, PublishedAt: &older},
		models.Post{ID: 2, Slug: "draft"},
		models.Post{ID: 3, Slug: "new", Published: true, PublishedAt: &newer},
	)
	ctx := context.Background()

	posts, err := repo.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "new" || posts[1].Slug != "old" {
		t.Errorf("Expected [new old], got %+v", posts)
	}

	if _, err := repo.GetPublishedBySlug(ctx, "draft"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a draft, got %v", err)
	}
}

func TestMockUserRepository_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	user := &models.User{Email: "duplicate@test.com", Username: "first"}
	if err := repo.CreateWithCredential(ctx, user, "hash"); err != nil {
		t.Fatalf("CreateWithCredential failed: %v", err)
	}

	exists, err := repo.EmailExists(ctx, "duplicate@test.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("Email should exist")
	}

	exists, err = repo.EmailExists(ctx, "nonexistent@test.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if exists {
		t.Error("Email should not exist")
	}

	err = repo.CreateWithCredential(ctx, &models.User{Email: "duplicate@test.com", Username: "second"}, "hash")
	if !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}

	account, err := repo.GetCredential(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCredential failed: %v", err)
	}
	if account.PasswordHash != "hash" || account.ProviderID != models.CredentialProvider {
		t.Errorf("Unexpected account %+v", account)
	}
}

func TestMockSessionRepository_DeleteExpired(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	sessions := []*models.Session{
		{Token: "live", ExpiresAt: now.Add(time.Hour)},
		{Token: "expired", ExpiresAt: now.Add(-time.Hour)},
		{Token: "boundary", ExpiresAt: now},
	}
	for _, s := range sessions {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	removed, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 sessions removed, got %d", removed)
	}
	if _, err := repo.GetByToken(ctx, "live"); err != nil {
		t.Errorf("Live session should remain: %v", err)
	}
}
