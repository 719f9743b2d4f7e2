package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/observability"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateMobileNumber = errors.New("mobile number already exists")
	ErrDuplicateEmail        = errors.New("email already exists")
)

type UserRepository interface {
	Create(user *domain.User) error
	FindByMobileNumber(mobile string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByID(id uint) (*domain.User, error)
	List(search string) ([]domain.User, error)
	UpdateByID(id uint, fields map[string]any) (*domain.User, error)
	SoftDeleteByID(id uint) error
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			observability.RecordRepositoryOperation(context.Background(), "user", "create", "conflict")
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateMobileNumber
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "create", "success")
	return nil
}

func (r *GormUserRepository) FindByMobileNumber(mobile string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("mobile_number = ?", mobile).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_mobile", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_mobile", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_mobile", "success")
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "success")
	return &user, nil
}

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "success")
	return &user, nil
}

func (r *GormUserRepository) List(search string) ([]domain.User, error) {
	var users []domain.User
	q := r.db.Order("id asc")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	if err := q.Find(&users).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "list", "success")
	return users, nil
}

func (r *GormUserRepository) UpdateByID(id uint, fields map[string]any) (*domain.User, error) {
	normalized := NormalizeUpdateFields(fields)
	if len(normalized) > 0 {
		res := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(normalized)
		if res.Error != nil {
			if isDuplicateKey(res.Error) {
				observability.RecordRepositoryOperation(context.Background(), "user", "update", "conflict")
				if strings.Contains(strings.ToLower(res.Error.Error()), "email") {
					return nil, ErrDuplicateEmail
				}
				return nil, ErrDuplicateMobileNumber
			}
			observability.RecordRepositoryOperation(context.Background(), "user", "update", "error")
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			observability.RecordRepositoryOperation(context.Background(), "user", "update", "not_found")
			return nil, ErrUserNotFound
		}
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "update", "success")
	return r.FindByID(id)
}

func (r *GormUserRepository) SoftDeleteByID(id uint) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "soft_delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "user", "soft_delete", "not_found")
		return ErrUserNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "soft_delete", "success")
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}
