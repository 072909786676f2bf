package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/javanauta/user-directory/internal/domain/user"
	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// userRepository implements user.Repository on MySQL. It converts between
// the GORM model and the domain entity, and translates database-specific
// failures (duplicate key, record not found) into business errors.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the MySQL-backed user repository.
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create inserts the record. The unique index on email is the final
// authority on uniqueness: a constraint violation here means a concurrent
// writer won the race past the service's pre-check, and it is reported as
// the same ErrEmailDuplicate failure kind.
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:    u.Email,
		Name:     u.Name,
		Password: u.Password,
		Role:     string(u.Role),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query user")
	}

	return toEntity(&model), nil
}

// FindByEmail is an exact-match lookup against the unique email index.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query user")
	}

	return toEntity(&model), nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, toEntity(&models[i]))
	}

	return users, nil
}

// Update saves the whole row in a single statement, so a cancelled request
// can never leave a half-applied patch behind. A duplicate-key violation on
// the new email is translated like in Create.
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the row permanently. No soft delete: the email becomes
// available again immediately.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete user")
	}

	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// toEntity converts the GORM model into the domain entity.
func toEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Email:     model.Email,
		Name:      model.Name,
		Password:  model.Password,
		Role:      user.Role(model.Role),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
