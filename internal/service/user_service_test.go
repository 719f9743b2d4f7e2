package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/security"
)

func TestUserServiceUpdateNormalizesMobileNumber(t *testing.T) {
	var gotFields map[string]any
	users := &stubUserRepository{
		updateFn: func(id uint, fields map[string]any) (*domain.User, error) {
			if id != 1 {
				t.Fatalf("unexpected id: %d", id)
			}
			gotFields = fields
			return &domain.User{ID: id, MobileNumber: "9876543210"}, nil
		},
	}
	svc := NewUserService(users, "IN")

	if _, err := svc.UpdateByID(context.Background(), 1, UpdateUserInput{
		MobileNumber: "9876543210",
		Name:         "Renamed",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotFields["mobile_number"] != "9876543210" || gotFields["name"] != "Renamed" {
		t.Fatalf("unexpected fields: %v", gotFields)
	}
}

func TestUserServiceUpdateRejectsInvalidMobileNumber(t *testing.T) {
	users := &stubUserRepository{
		updateFn: func(_ uint, _ map[string]any) (*domain.User, error) {
			t.Fatal("repository must not be called for an invalid number")
			return nil, nil
		},
	}
	svc := NewUserService(users, "IN")

	if _, err := svc.UpdateByID(context.Background(), 1, UpdateUserInput{MobileNumber: "123"}); !errors.Is(err, security.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestUserServiceUpdateSkipsAbsentMobileNumber(t *testing.T) {
	users := &stubUserRepository{
		updateFn: func(_ uint, fields map[string]any) (*domain.User, error) {
			if _, ok := fields["mobile_number"]; ok {
				t.Fatal("absent mobile number must not be in the update")
			}
			return &domain.User{ID: 1}, nil
		},
	}
	svc := NewUserService(users, "IN")

	if _, err := svc.UpdateByID(context.Background(), 1, UpdateUserInput{Name: "Only"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDeviceServiceUpdateForceLogoutFlag(t *testing.T) {
	force := true
	sessions := &stubDeviceSessionRepository{
		updateFn: func(id uint, fields map[string]any) (*domain.DeviceSession, error) {
			if fields["force_logout"] != true {
				t.Fatalf("expected force_logout=true, got %v", fields["force_logout"])
			}
			return &domain.DeviceSession{ID: id, ForceLogout: true}, nil
		},
	}
	svc := NewDeviceService(sessions)

	session, err := svc.UpdateByID(context.Background(), 7, UpdateDeviceSessionInput{ForceLogout: &force})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !session.ForceLogout {
		t.Fatal("expected force_logout set")
	}
}

func TestDeviceServiceUpdateOmitsNilForceLogout(t *testing.T) {
	sessions := &stubDeviceSessionRepository{
		updateFn: func(_ uint, fields map[string]any) (*domain.DeviceSession, error) {
			if _, ok := fields["force_logout"]; ok {
				t.Fatal("nil force_logout must not be in the update")
			}
			return &domain.DeviceSession{ID: 7}, nil
		},
	}
	svc := NewDeviceService(sessions)

	if _, err := svc.UpdateByID(context.Background(), 7, UpdateDeviceSessionInput{DeviceModel: "Pixel 9"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}
