package user

import (
	"context"
	"errors"
	"strings"

	"github.com/MyelinBots/userrank-go/internal/db"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repository.go -destination=mocks/mock_user_repository.go -package=mocks

// ErrDuplicateEmail is returned when a write violates the unique email index.
var ErrDuplicateEmail = errors.New("duplicate email")

/*
REPOSITORY INTERFACE
*/

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uint) error

	// ListUsers returns users with score >= minScore (when non-nil),
	// ordered by score descending when byScore, otherwise by id ascending.
	ListUsers(ctx context.Context, minScore *int, byScore bool) ([]*User, error)

	// RankedUsers returns all users ordered by score descending,
	// ties broken by ascending id.
	RankedUsers(ctx context.Context) ([]*User, error)
}

/*
REPOSITORY IMPL
*/

type UserRepositoryImpl struct {
	db *db.DB // wrapper holding .DB *gorm.DB
}

func NewUserRepository(database *db.DB) UserRepository {
	return &UserRepositoryImpl{db: database}
}

func normEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

/*
CRUD
*/

func (r *UserRepositoryImpl) CreateUser(ctx context.Context, u *User) error {
	u.Email = normEmail(u.Email)

	if err := r.db.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.DB.WithContext(ctx).Where("email = ?", normEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, u *User) error {
	u.Email = normEmail(u.Email)

	if err := r.db.DB.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).Delete(&User{}, id).Error
}

/*
LISTING / LEADERBOARD
*/

func (r *UserRepositoryImpl) ListUsers(ctx context.Context, minScore *int, byScore bool) ([]*User, error) {
	query := r.db.DB.WithContext(ctx).Model(&User{})

	if minScore != nil {
		query = query.Where("score >= ?", *minScore)
	}

	if byScore {
		query = query.Order("score DESC, id ASC")
	} else {
		query = query.Order("id ASC")
	}

	var users []*User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) RankedUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.db.DB.WithContext(ctx).
		Order("score DESC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
