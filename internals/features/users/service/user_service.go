package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Register(ctx context.Context, email, password, fullName, role string) (model.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = constants.RoleStudent
	}
	if !constants.IsValidRole(role) {
		return model.UserModel{}, helper.Validation("Unknown role: " + role)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return model.UserModel{}, err
	}
	if count > 0 {
		return model.UserModel{}, helper.Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.UserModel{}, err
	}

	user := model.UserModel{
		UserEmail:    email,
		UserPassword: string(hash),
		UserFullName: strings.TrimSpace(fullName),
		UserRole:     role,
		UserActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return model.UserModel{}, err
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (model.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.UserModel
	if err := s.db.WithContext(ctx).First(&user, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserModel{}, helper.Validation("Invalid email or password")
		}
		return model.UserModel{}, err
	}
	if !user.UserActive {
		return model.UserModel{}, helper.Forbidden("Account has been deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)) != nil {
		return model.UserModel{}, helper.Validation("Invalid email or password")
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	var user model.UserModel
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserModel{}, helper.NotFound("User not found")
		}
		return model.UserModel{}, err
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, actor policy.Actor) ([]model.UserModel, error) {
	if !actor.IsAdmin() {
		return nil, helper.Forbidden("Only admins can list users")
	}
	var users []model.UserModel
	if err := s.db.WithContext(ctx).Order("user_created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetActive toggles the soft-delete flag. Deactivated users fail auth.
func (s *Service) SetActive(ctx context.Context, actor policy.Actor, id uuid.UUID, active bool) (model.UserModel, error) {
	if !actor.IsAdmin() {
		return model.UserModel{}, helper.Forbidden("Only admins can change account status")
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.UserModel{}, err
	}
	if err := s.db.WithContext(ctx).Model(&user).
		Update("user_active", active).Error; err != nil {
		return model.UserModel{}, err
	}
	user.UserActive = active
	return user, nil
}
