package services

import (
	"testing"

	"blogapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, ownerID uint, title, content string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, Content: content, UserID: ownerID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestCommentService_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "Alice", "alice@example.com")
	commenter := seedUser(t, db, "Bob", "bob@example.com")
	post := seedPost(t, db, author.ID, "Hello", "World")
	svc := NewCommentService(db)

	comment, err := svc.Create(commenter.ID, post.ID, &models.CreateCommentRequest{Content: "Nice!"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, commenter.ID, comment.UserID)

	comments, err := svc.ListForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Nice!", comments[0].Content)
	assert.Equal(t, "Bob", comments[0].User.Name)
}

func TestCommentService_ParentPostMustExist(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	svc := NewCommentService(db)

	_, err := svc.ListForPost(42)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Create(user.ID, 42, &models.CreateCommentRequest{Content: "orphan"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentService_SoftDeletedParentHidesComments(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "Alice", "alice@example.com")
	post := seedPost(t, db, author.ID, "Hello", "World")
	svc := NewCommentService(db)

	comment, err := svc.Create(author.ID, post.ID, &models.CreateCommentRequest{Content: "still here"})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Post{}, post.ID).Error)

	_, err = svc.ListForPost(post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// The comment row itself survives the parent's soft delete.
	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCommentService_OnlyOwnerMayUpdate(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "Alice", "alice@example.com")
	commenter := seedUser(t, db, "Bob", "bob@example.com")
	post := seedPost(t, db, author.ID, "Hello", "World")
	svc := NewCommentService(db)

	comment, err := svc.Create(commenter.ID, post.ID, &models.CreateCommentRequest{Content: "original"})
	require.NoError(t, err)

	_, err = svc.Update(author.ID, comment.ID, &models.UpdateCommentRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(commenter.ID, comment.ID, &models.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentService_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice", "alice@example.com")
	svc := NewCommentService(db)

	_, err := svc.Update(user.ID, 42, &models.UpdateCommentRequest{Content: "ghost"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

// Mirrors the asymmetry with posts: post mutations are open to any
// authenticated user by default, comment mutations never are.
func TestCommentService_DeleteScenario(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "Alice", "alice@example.com")
	commenter := seedUser(t, db, "Bob", "bob@example.com")
	post := seedPost(t, db, author.ID, "Hello", "World")
	svc := NewCommentService(db)

	comment, err := svc.Create(commenter.ID, post.ID, &models.CreateCommentRequest{Content: "Nice!"})
	require.NoError(t, err)

	err = svc.Delete(author.ID, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(commenter.ID, comment.ID))

	comments, err := svc.ListForPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Hard delete: the row is gone, not soft-deleted.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	err = svc.Delete(commenter.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
