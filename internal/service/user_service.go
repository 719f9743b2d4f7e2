package service

import (
	"context"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/security"
)

type UpdateUserInput struct {
	Email        *string `json:"email,omitempty"`
	MobileNumber string  `json:"mobile_number,omitempty"`
	Name         string  `json:"name,omitempty"`
}

type UserServiceInterface interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, search string) ([]domain.User, error)
	UpdateByID(ctx context.Context, id uint, input UpdateUserInput) (*domain.User, error)
	SoftDeleteByID(ctx context.Context, id uint) error
}

type UserService struct {
	users         repository.UserRepository
	defaultRegion string
}

func NewUserService(users repository.UserRepository, defaultRegion string) *UserService {
	return &UserService{users: users, defaultRegion: defaultRegion}
}

func (s *UserService) GetByID(_ context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(id)
}

func (s *UserService) List(_ context.Context, search string) ([]domain.User, error) {
	return s.users.List(search)
}

// UpdateByID applies a partial profile update. Absent and empty fields are
// stripped before persistence, so they leave the stored value untouched.
func (s *UserService) UpdateByID(_ context.Context, id uint, input UpdateUserInput) (*domain.User, error) {
	fields := map[string]any{
		"email": input.Email,
		"name":  input.Name,
	}
	if input.MobileNumber != "" {
		mobile, err := security.NormalizeMobileNumber(input.MobileNumber, s.defaultRegion)
		if err != nil {
			return nil, err
		}
		fields["mobile_number"] = mobile
	}
	return s.users.UpdateByID(id, fields)
}

func (s *UserService) SoftDeleteByID(_ context.Context, id uint) error {
	return s.users.SoftDeleteByID(id)
}
