package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cppla/blogapi/dto"
	"github.com/cppla/blogapi/models"
	"github.com/cppla/blogapi/store"
	"github.com/cppla/blogapi/utils"
)

// UserService owns the business rules for users.
type UserService struct {
	store store.Gateway
}

// NewUserService creates a UserService on top of gw.
func NewUserService(gw store.Gateway) *UserService {
	return &UserService{store: gw}
}

// Create registers a user. The email must not be in use.
func (s *UserService) Create(ctx context.Context, in dto.CreateUser) (*models.User, error) {
	in.Email = dto.NormalizeEmail(in.Email)
	if err := check(nil, in); err != nil {
		return nil, err
	}

	user := dto.NewUser(in)
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		taken, err := tx.UserEmailExists(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return ErrDuplicateEmail
		}
		return saveUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	utils.Sugar.Infow("user created", "user_id", user.ID)
	return user, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if fields := utils.ValidateID("id", id); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	user, err := s.store.FindUser(ctx, id)
	if err != nil {
		return nil, lookupError(err, userNotFound(id), "load user")
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update merges the supplied fields onto the stored user.
func (s *UserService) Update(ctx context.Context, id string, patch dto.UserPatch) (*models.User, error) {
	if patch.Email != nil {
		email := dto.NormalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if err := check(utils.ValidateID("id", id), patch); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		found, err := tx.FindUser(ctx, id)
		if err != nil {
			return lookupError(err, userNotFound(id), "load user")
		}
		if patch.Email != nil && *patch.Email != found.Email {
			taken, err := tx.UserEmailExists(ctx, *patch.Email)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if taken {
				return ErrDuplicateEmail
			}
		}
		dto.ApplyUserPatch(found, patch)
		if err := saveUser(ctx, tx, found); err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.Sugar.Infow("user updated", "user_id", user.ID)
	return user, nil
}

// Delete removes a user that no longer authors any post.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if fields := utils.ValidateID("id", id); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		if _, err := tx.FindUser(ctx, id); err != nil {
			return lookupError(err, userNotFound(id), "load user")
		}
		busy, err := tx.UserHasPosts(ctx, id)
		if err != nil {
			return fmt.Errorf("check user posts: %w", err)
		}
		if busy {
			return ErrUserHasPosts
		}
		removed, err := tx.DeleteUser(ctx, id)
		switch {
		case errors.Is(err, store.ErrForeignKey):
			// a post was added after the check; the constraint has the final word
			return ErrUserHasPosts
		case err != nil:
			return fmt.Errorf("delete user: %w", err)
		case !removed:
			return userNotFound(id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	utils.Sugar.Infow("user deleted", "user_id", id)
	return nil
}

// saveUser persists u, reading a unique violation as a taken email.
func saveUser(ctx context.Context, tx store.Gateway, u *models.User) error {
	err := tx.SaveUser(ctx, u)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicateEmail
	case err != nil:
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// lookupError turns store.ErrNotFound into notFound and wraps anything else.
func lookupError(err, notFound error, op string) error {
	if store.IsNotFound(err) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
