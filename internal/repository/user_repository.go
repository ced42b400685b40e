package repository

import (
	"context"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "userauth/internal/errors"
	"userauth/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// UserRepository defines credential store operations.
type UserRepository interface {
	// Create inserts user and fills in its ID and timestamps. A taken email
	// yields an error matching apperrors.ErrDuplicateEmail.
	Create(ctx context.Context, user *model.User) error
	// FindByEmail yields apperrors.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// translateError maps driver and ORM errors onto the store taxonomy, keeping
// the original error reachable.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewStoreError(apperrors.ErrUserNotFound, err)
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return apperrors.NewStoreError(apperrors.ErrDuplicateEmail, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewStoreError(apperrors.ErrDuplicateEmail, err)
	}
	return err
}
