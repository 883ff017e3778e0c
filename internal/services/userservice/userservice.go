package userservice

import (
	"context"
	"errors"

	"github.com/MyelinBots/userrank-go/internal/db/repositories/user"
)

// ErrNotFound is returned when an operation targets an id with no record.
var ErrNotFound = errors.New("user not found")

// Fixed client-facing messages.
const (
	MsgEmailExists   = "Email already exists."
	MsgScorePositive = "Score must be a positive integer."
)

// ValidationError is a client input error carrying a fixed message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type UserService interface {
	Create(ctx context.Context, name, email string, score int) (*user.User, error)
	Update(ctx context.Context, id uint, name, email string, score int) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*user.User, error)
	List(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error)
	RankedList(ctx context.Context) ([]*user.User, error)
	RankOf(ctx context.Context, id uint) (int, error)
}

type UserServiceImpl struct {
	repo user.UserRepository
}

func NewUserService(repo user.UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

// Create validates email uniqueness and score positivity, then persists.
// The unique index on email backs up the pre-check: a duplicate that slips
// past it under concurrent creates still fails at commit time and is
// reported with the same message.
func (s *UserServiceImpl) Create(ctx context.Context, name, email string, score int) (*user.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Message: MsgEmailExists}
	}

	if score <= 0 {
		return nil, &ValidationError{Message: MsgScorePositive}
	}

	u := &user.User{
		Name:  name,
		Email: email,
		Score: score,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, &ValidationError{Message: MsgEmailExists}
		}
		return nil, err
	}
	return u, nil
}

// Update overwrites name, email and score in place; id and createdAt are
// untouched. Keeping the same email is allowed, taking a different user's
// email is not.
func (s *UserServiceImpl) Update(ctx context.Context, id uint, name, email string, score int) error {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	byEmail, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != id {
		return &ValidationError{Message: MsgEmailExists}
	}

	if score <= 0 {
		return &ValidationError{Message: MsgScorePositive}
	}

	existing.Name = name
	existing.Email = email
	existing.Score = score

	if err := s.repo.UpdateUser(ctx, existing); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return &ValidationError{Message: MsgEmailExists}
		}
		return err
	}
	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *UserServiceImpl) List(ctx context.Context, minScore *int, sortByScore bool) ([]*user.User, error) {
	return s.repo.ListUsers(ctx, minScore, sortByScore)
}

// RankedList returns all users by score descending, ties broken by
// ascending id.
func (s *UserServiceImpl) RankedList(ctx context.Context) ([]*user.User, error) {
	return s.repo.RankedUsers(ctx)
}

// RankOf returns the 1-based position of the user within the full
// descending ranking.
func (s *UserServiceImpl) RankOf(ctx context.Context, id uint) (int, error) {
	ranked, err := s.repo.RankedUsers(ctx)
	if err != nil {
		return 0, err
	}

	for i, u := range ranked {
		if u.ID == id {
			return i + 1, nil
		}
	}
	return 0, ErrNotFound
}
