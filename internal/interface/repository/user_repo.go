package repository

import (
	"context"
	"errors"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormUserRepository implements the UserRepository interface
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &GormUserRepository{
		db: db,
	}
}

// Create inserts a user with an empty flight list
func (r *GormUserRepository) Create(ctx context.Context, user *entity.User) error {
	model := Users{
		Name:                   strings.TrimSpace(user.Name),
		Email:                  normalizeEmail(user.Email),
		PhoneNumber:            strings.TrimSpace(user.PhoneNumber),
		Password:               user.PasswordHash,
		NotificationPreference: string(user.NotificationPreference),
		FlightsList:            FlightList(user.FlightIDs),
	}
	if model.FlightsList == nil {
		model.FlightsList = FlightList{}
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKey(err) {
			return repository.ErrEmailExists
		}
		return err
	}

	user.ID = model.ID
	user.Email = model.Email
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var model Users
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&model), nil
}

// List returns every user ordered by id
func (r *GormUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []Users
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserEntity(&models[i]))
	}
	return users, nil
}

// UpdatePreference stores a new notification preference
func (r *GormUserRepository) UpdatePreference(ctx context.Context, email string, preference entity.NotificationPreference) error {
	result := r.db.WithContext(ctx).
		Model(&Users{}).
		Where("email = ?", normalizeEmail(email)).
		Update("notification_preference", string(preference))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func toUserEntity(model *Users) *entity.User {
	return &entity.User{
		ID:                     model.ID,
		Name:                   model.Name,
		Email:                  model.Email,
		PhoneNumber:            model.PhoneNumber,
		PasswordHash:           model.Password,
		NotificationPreference: entity.ParsePreference(model.NotificationPreference),
		FlightIDs:              []int64(model.FlightsList),
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
