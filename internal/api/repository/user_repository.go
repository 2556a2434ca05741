package repository

import (
	"context"

	"stock-portfolio-service/internal/entity"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
// Lookups return gorm.ErrRecordNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, id uint, username, passwordHash, email *string) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// Create inserts the user and fills in the generated id and created_at.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID retrieves a user by its ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by its username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites the non-nil fields in one statement and returns the updated row.
func (r *userRepository) Update(ctx context.Context, id uint, username, passwordHash, email *string) (*entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Raw(`
		UPDATE users
		SET username = COALESCE(?, username),
			password = COALESCE(?, password),
			email = COALESCE(?, email)
		WHERE user_id = ?
		RETURNING user_id, username, password, email, created_at`,
		username, passwordHash, email, id,
	).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &users[0], nil
}

// Delete removes the user row. Positions owned by the user are left in place.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
