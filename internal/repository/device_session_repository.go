package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/observability"
)

var (
	ErrDeviceSessionNotFound = errors.New("device session not found")
	// ErrRefreshTokenStale means the stored ciphertext changed between read
	// and rotate; a concurrent refresh won the race.
	ErrRefreshTokenStale = errors.New("stored refresh token is stale")
)

type DeviceSessionRepository interface {
	UpsertByDeviceID(session *domain.DeviceSession) (*domain.DeviceSession, error)
	FindByDeviceID(deviceUniqueID string) (*domain.DeviceSession, error)
	FindByID(id uint) (*domain.DeviceSession, error)
	List() ([]domain.DeviceSession, error)
	UpdateByID(id uint, fields map[string]any) (*domain.DeviceSession, error)
	MarkLoggedOut(deviceUniqueID string, at time.Time) (*domain.DeviceSession, error)
	RotateRefreshToken(id uint, oldCiphertext, newCiphertext string) error
	DeleteByID(id uint) error
}

type GormDeviceSessionRepository struct{ db *gorm.DB }

func NewDeviceSessionRepository(db *gorm.DB) DeviceSessionRepository {
	return &GormDeviceSessionRepository{db: db}
}

// UpsertByDeviceID creates the session row for a device on first login and
// replaces its mutable fields on every later login. DeviceUniqueID is the
// single source of truth; the unique index keeps concurrent first logins
// from producing duplicate rows.
func (r *GormDeviceSessionRepository) UpsertByDeviceID(session *domain.DeviceSession) (*domain.DeviceSession, error) {
	var existing domain.DeviceSession
	err := r.db.Where("device_unique_id = ?", session.DeviceUniqueID).First(&existing).Error
	switch {
	case err == nil:
		session.ID = existing.ID
		session.CreatedAt = existing.CreatedAt
		if err := r.db.Save(session).Error; err != nil {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "upsert", "error")
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.Create(session).Error; err != nil {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "upsert", "error")
			return nil, err
		}
	default:
		observability.RecordRepositoryOperation(context.Background(), "device_session", "upsert", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "upsert", "success")
	return session, nil
}

func (r *GormDeviceSessionRepository) FindByDeviceID(deviceUniqueID string) (*domain.DeviceSession, error) {
	var session domain.DeviceSession
	err := r.db.Where("device_unique_id = ?", deviceUniqueID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_device_id", "not_found")
			return nil, ErrDeviceSessionNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_device_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_device_id", "success")
	return &session, nil
}

func (r *GormDeviceSessionRepository) FindByID(id uint) (*domain.DeviceSession, error) {
	var session domain.DeviceSession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_id", "not_found")
			return nil, ErrDeviceSessionNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "find_by_id", "success")
	return &session, nil
}

func (r *GormDeviceSessionRepository) List() ([]domain.DeviceSession, error) {
	var sessions []domain.DeviceSession
	if err := r.db.Order("id asc").Find(&sessions).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "list", "success")
	return sessions, nil
}

func (r *GormDeviceSessionRepository) UpdateByID(id uint, fields map[string]any) (*domain.DeviceSession, error) {
	normalized := NormalizeUpdateFields(fields)
	if len(normalized) > 0 {
		res := r.db.Model(&domain.DeviceSession{}).Where("id = ?", id).Updates(normalized)
		if res.Error != nil {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "update", "error")
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			observability.RecordRepositoryOperation(context.Background(), "device_session", "update", "not_found")
			return nil, ErrDeviceSessionNotFound
		}
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "update", "success")
	return r.FindByID(id)
}

func (r *GormDeviceSessionRepository) MarkLoggedOut(deviceUniqueID string, at time.Time) (*domain.DeviceSession, error) {
	res := r.db.Model(&domain.DeviceSession{}).
		Where("device_unique_id = ?", deviceUniqueID).
		Updates(map[string]any{"last_logout": at, "is_login": false})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "mark_logged_out", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "mark_logged_out", "not_found")
		return nil, ErrDeviceSessionNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "mark_logged_out", "success")
	return r.FindByDeviceID(deviceUniqueID)
}

// RotateRefreshToken swaps the stored ciphertext only if it still equals the
// value the caller read. Guarding the overwrite on the old ciphertext keeps
// two concurrent refreshes presenting the same token from both succeeding.
func (r *GormDeviceSessionRepository) RotateRefreshToken(id uint, oldCiphertext, newCiphertext string) error {
	res := r.db.Model(&domain.DeviceSession{}).
		Where("id = ? AND refresh_token = ?", id, oldCiphertext).
		Update("refresh_token", newCiphertext)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "rotate_refresh_token", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "rotate_refresh_token", "stale")
		return ErrRefreshTokenStale
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "rotate_refresh_token", "success")
	return nil
}

func (r *GormDeviceSessionRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&domain.DeviceSession{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "device_session", "delete", "not_found")
		return ErrDeviceSessionNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "device_session", "delete", "success")
	return nil
}
