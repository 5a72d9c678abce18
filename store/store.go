// Package store is the persistence gateway over gorm. Callers see entities and the
// sentinel errors of this package, never driver or gorm error values.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/blogapi/models"
)

// Gateway is the transactional store used by the services.
type Gateway interface {
	// Transaction runs fn inside one database transaction. fn must use the Gateway it
	// receives; returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error

	UserEmailExists(ctx context.Context, email string) (bool, error)
	UserHasPosts(ctx context.Context, userID string) (bool, error)
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindUsers(ctx context.Context, ids []string) (map[string]*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) (bool, error)

	PostTitleExists(ctx context.Context, title string) (bool, error)
	FindPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	SavePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id string) (bool, error)
}

// GormStore implements Gateway on a gorm handle.
type GormStore struct {
	db *gorm.DB
}

// New wraps db.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Transaction implements Gateway.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&GormStore{db: tx})
		return fnErr
	})
	if err != nil && err == fnErr {
		// Already in caller terms; only begin/commit failures need translating.
		return err
	}
	return translate(err)
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// UserEmailExists implements Gateway.
func (s *GormStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	return exists[models.User](s.conn(ctx), "email", email)
}

// UserHasPosts reports whether any post references the user.
func (s *GormStore) UserHasPosts(ctx context.Context, userID string) (bool, error) {
	return exists[models.Post](s.conn(ctx), "author_id", userID)
}

// FindUser implements Gateway.
func (s *GormStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](s.conn(ctx), id)
}

// FindUsers loads the given users keyed by id. Unknown ids are simply absent.
func (s *GormStore) FindUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// ListUsers returns every user, oldest first.
func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("created_at ASC").Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// SaveUser implements Gateway.
func (s *GormStore) SaveUser(ctx context.Context, u *models.User) error {
	return save(s.conn(ctx), u, u.ID == "")
}

// DeleteUser implements Gateway.
func (s *GormStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.User](s.conn(ctx), id)
}

// PostTitleExists implements Gateway.
func (s *GormStore) PostTitleExists(ctx context.Context, title string) (bool, error) {
	return exists[models.Post](s.conn(ctx), "title", title)
}

// FindPost implements Gateway.
func (s *GormStore) FindPost(ctx context.Context, id string) (*models.Post, error) {
	return findByID[models.Post](s.conn(ctx), id)
}

// ListPosts returns every post, newest first.
func (s *GormStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.conn(ctx).Order("created_at DESC").Order("id").Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// SavePost implements Gateway.
func (s *GormStore) SavePost(ctx context.Context, p *models.Post) error {
	return save(s.conn(ctx), p, p.ID == "")
}

// DeletePost implements Gateway.
func (s *GormStore) DeletePost(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Post](s.conn(ctx), id)
}

func exists[T any](db *gorm.DB, column string, value any) (bool, error) {
	var count int64
	err := db.Model(new(T)).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).Limit(1).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func findByID[T any](db *gorm.DB, id string) (*T, error) {
	var out T
	if err := db.Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// save inserts when isNew, otherwise rewrites every column. Associations are never written.
func save(db *gorm.DB, entity any, isNew bool) error {
	tx := db.Omit(clause.Associations)
	if isNew {
		return translate(tx.Create(entity).Error)
	}
	// Updates instead of Save: Save turns an update of a vanished row into an insert.
	return translate(tx.Model(entity).Select("*").Updates(entity).Error)
}

func deleteByID[T any](db *gorm.DB, id string) (bool, error) {
	res := db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
