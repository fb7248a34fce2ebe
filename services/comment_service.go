package services

import (
	"errors"

	"blogapi/models"

	"gorm.io/gorm"
)

// CommentService handles comments under a parent post. Comments are not
// cached and are hard-deleted.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListForPost returns all comments on a post, oldest first. The parent
// lookup uses the default scope, so a soft-deleted post hides its comments.
func (s *CommentService) ListForPost(postID uint) ([]models.Comment, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentService) Create(actorID, postID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: req.Content,
		PostID:  postID,
		UserID:  actorID,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) Update(actorID, id uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if err := authorizeOwner(actorID, comment.UserID); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

func (s *CommentService) Delete(actorID, id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := authorizeOwner(actorID, comment.UserID); err != nil {
		return err
	}

	return s.db.Delete(&comment).Error
}

func (s *CommentService) requirePost(postID uint) error {
	var post models.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
