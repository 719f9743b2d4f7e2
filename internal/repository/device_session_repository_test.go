package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
)

func newDeviceSession(deviceID, ciphertext string) *domain.DeviceSession {
	now := time.Now().UTC()
	return &domain.DeviceSession{
		UserID:         1,
		DeviceUniqueID: deviceID,
		DeviceModel:    "Pixel 8",
		IsLogin:        true,
		LastLogin:      &now,
		RefreshToken:   ciphertext,
	}
}

func TestDeviceSessionUpsertCreatesThenReplaces(t *testing.T) {
	repo := NewDeviceSessionRepository(newRepositoryDBForTest(t))

	first, err := repo.UpsertByDeviceID(newDeviceSession("dev-1", "ct-1"))
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}

	replacement := newDeviceSession("dev-1", "ct-2")
	replacement.DeviceModel = "Pixel 9"
	second, err := repo.UpsertByDeviceID(replacement)
	if err != nil {
		t.Fatalf("upsert replace: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to reuse row %d, got %d", first.ID, second.ID)
	}

	sessions, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected a single session per device, got %d", len(sessions))
	}
	if sessions[0].RefreshToken != "ct-2" || sessions[0].DeviceModel != "Pixel 9" {
		t.Fatalf("expected replaced fields, got %+v", sessions[0])
	}
}

func TestDeviceSessionFindByDeviceID(t *testing.T) {
	repo := NewDeviceSessionRepository(newRepositoryDBForTest(t))

	if _, err := repo.FindByDeviceID("missing"); !errors.Is(err, ErrDeviceSessionNotFound) {
		t.Fatalf("expected ErrDeviceSessionNotFound, got %v", err)
	}

	created, err := repo.UpsertByDeviceID(newDeviceSession("dev-1", "ct-1"))
	if err != nil {
		t.Fatal(err)
	}
	found, err := repo.FindByDeviceID("dev-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("unexpected session: %+v", found)
	}
}

func TestDeviceSessionMarkLoggedOut(t *testing.T) {
	repo := NewDeviceSessionRepository(newRepositoryDBForTest(t))

	if _, err := repo.UpsertByDeviceID(newDeviceSession("dev-1", "ct-1")); err != nil {
		t.Fatal(err)
	}

	at := time.Now().UTC().Truncate(time.Second)
	session, err := repo.MarkLoggedOut("dev-1", at)
	if err != nil {
		t.Fatalf("mark logged out: %v", err)
	}
	if session.LastLogout == nil {
		t.Fatal("expected last_logout to be set")
	}
	if session.IsLogin {
		t.Fatal("expected is_login to be cleared")
	}

	if _, err := repo.MarkLoggedOut("missing", at); !errors.Is(err, ErrDeviceSessionNotFound) {
		t.Fatalf("expected ErrDeviceSessionNotFound, got %v", err)
	}
}

func TestDeviceSessionRotateRefreshToken(t *testing.T) {
	repo := NewDeviceSessionRepository(newRepositoryDBForTest(t))

	created, err := repo.UpsertByDeviceID(newDeviceSession("dev-1", "ct-old"))
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.RotateRefreshToken(created.ID, "ct-old", "ct-new"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	found, err := repo.FindByDeviceID("dev-1")
	if err != nil {
		t.Fatal(err)
	}
	if found.RefreshToken != "ct-new" {
		t.Fatalf("expected rotated ciphertext, got %q", found.RefreshToken)
	}

	// A second rotation guarded on the already-replaced ciphertext must lose.
	if err := repo.RotateRefreshToken(created.ID, "ct-old", "ct-other"); !errors.Is(err, ErrRefreshTokenStale) {
		t.Fatalf("expected ErrRefreshTokenStale, got %v", err)
	}
}

func TestDeviceSessionUpdateAndDelete(t *testing.T) {
	repo := NewDeviceSessionRepository(newRepositoryDBForTest(t))

	created, err := repo.UpsertByDeviceID(newDeviceSession("dev-1", "ct-1"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := repo.UpdateByID(created.ID, map[string]any{
		"device_token_fcm": "fcm-token",
		"device_model":     "",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DeviceTokenFCM != "fcm-token" {
		t.Fatalf("expected fcm token update, got %q", updated.DeviceTokenFCM)
	}
	if updated.DeviceModel != "Pixel 8" {
		t.Fatalf("expected empty model to be stripped, got %q", updated.DeviceModel)
	}

	if err := repo.DeleteByID(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(created.ID); !errors.Is(err, ErrDeviceSessionNotFound) {
		t.Fatalf("expected ErrDeviceSessionNotFound, got %v", err)
	}
}
