package repository

import (
	"errors"
	"testing"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	user := &domain.User{MobileNumber: "9876543210", Name: "A", Email: strPtr("a@example.com")}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned id")
	}

	byMobile, err := repo.FindByMobileNumber("9876543210")
	if err != nil {
		t.Fatalf("find by mobile: %v", err)
	}
	if byMobile.ID != user.ID || byMobile.Name != "A" {
		t.Fatalf("unexpected user: %+v", byMobile)
	}

	byEmail, err := repo.FindByEmail("a@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("unexpected user: %+v", byEmail)
	}

	if _, err := repo.FindByMobileNumber("9999999999"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryDuplicateMobileNumber(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	if err := repo.Create(&domain.User{MobileNumber: "9876543210", Name: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(&domain.User{MobileNumber: "9876543210", Name: "B"})
	if !errors.Is(err, ErrDuplicateMobileNumber) && !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUserRepositoryUpdateStripsEmptyFields(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	user := &domain.User{MobileNumber: "9876543210", Name: "Original", Email: strPtr("a@example.com")}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateByID(user.ID, map[string]any{
		"name":  "Renamed",
		"email": "",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if updated.Email == nil || *updated.Email != "a@example.com" {
		t.Fatalf("expected empty email to be stripped from update, got %v", updated.Email)
	}
}

func TestUserRepositoryUpdateNotFound(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))
	if _, err := repo.UpdateByID(404, map[string]any{"name": "X"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositorySoftDelete(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	user := &domain.User{MobileNumber: "9876543210", Name: "A"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SoftDeleteByID(user.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	found, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find after soft delete: %v", err)
	}
	if !found.IsDeleted {
		t.Fatal("expected is_deleted to be set")
	}

	if err := repo.SoftDeleteByID(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryListWithSearch(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	for _, u := range []*domain.User{
		{MobileNumber: "9876543210", Name: "Asha"},
		{MobileNumber: "9876543211", Name: "Ashok"},
		{MobileNumber: "9876543212", Name: "Bina"},
	} {
		if err := repo.Create(u); err != nil {
			t.Fatalf("create %s: %v", u.Name, err)
		}
	}

	all, err := repo.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}

	matched, err := repo.List("Ash")
	if err != nil {
		t.Fatalf("list with search: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
}
