package services

import (
	"context"
	"errors"
	"time"

	"blogapi/cache"
	"blogapi/models"

	"gorm.io/gorm"
)

// PostService orchestrates post reads through the cache and keeps the cache
// keys in step with every mutation. Reads never bypass the cache.
type PostService struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration

	// enforceOwnership applies the owner gate to post update/delete.
	// See config.Config.EnforcePostOwnership.
	enforceOwnership bool
}

func NewPostService(db *gorm.DB, c cache.Cache, ttl time.Duration, enforceOwnership bool) *PostService {
	return &PostService{
		db:               db,
		cache:            c,
		ttl:              ttl,
		enforceOwnership: enforceOwnership,
	}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return cache.Remember(ctx, s.cache, cache.PostsKey, s.ttl, func() ([]models.Post, error) {
		var posts []models.Post
		err := s.db.Preload("User").Order("created_at DESC").Find(&posts).Error
		return posts, err
	})
}

func (s *PostService) Create(ctx context.Context, userID uint, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, post.ID)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := cache.Remember(ctx, s.cache, cache.PostKey(id), s.ttl, func() (models.Post, error) {
		var post models.Post
		if err := s.db.Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return post, ErrPostNotFound
			}
			return post, err
		}
		return post, nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, actorID, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if s.enforceOwnership {
		if err := authorizeOwner(actorID, post.UserID); err != nil {
			return nil, err
		}
	}

	post.Title = req.Title
	post.Content = req.Content

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, post.ID)
	return &post, nil
}

func (s *PostService) Delete(ctx context.Context, actorID, id uint) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if s.enforceOwnership {
		if err := authorizeOwner(actorID, post.UserID); err != nil {
			return err
		}
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return err
	}

	s.invalidate(ctx, post.ID)
	return nil
}

// Restore clears the soft-delete marker. The lookup includes trashed rows;
// restoring an already-active post is a no-op rather than an error.
func (s *PostService) Restore(ctx context.Context, id uint) error {
	var post models.Post
	if err := s.db.Unscoped().First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := s.db.Unscoped().Model(&post).Update("deleted_at", nil).Error; err != nil {
		return err
	}

	s.invalidate(ctx, post.ID)
	return nil
}

// Search matches the query as a substring of title or content. Results are
// cached per raw query string and never invalidated by mutations, so they
// can lag the store by up to the TTL.
func (s *PostService) Search(ctx context.Context, query string) ([]models.Post, error) {
	return cache.Remember(ctx, s.cache, cache.SearchKey(query), s.ttl, func() ([]models.Post, error) {
		var posts []models.Post
		pattern := "%" + query + "%"
		err := s.db.Where("title LIKE ? OR content LIKE ?", pattern, pattern).
			Preload("User").
			Order("created_at DESC").
			Find(&posts).Error
		return posts, err
	})
}

// invalidate drops the listing key and the per-post key after a mutation.
// Cache eviction failures are not surfaced: the entries expire on their own
// within the TTL and the database already holds the new state.
func (s *PostService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, cache.PostsKey)
	_ = s.cache.Delete(ctx, cache.PostKey(id))
}
