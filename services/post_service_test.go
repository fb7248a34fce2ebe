package services

import (
	"context"
	"testing"
	"time"

	"blogapi/cache"
	"blogapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "irrelevant"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newPostService(t *testing.T, db *gorm.DB, enforceOwnership bool) *PostService {
	t.Helper()
	return NewPostService(db, cache.NewMemory(), 10*time.Minute, enforceOwnership)
}

func TestPostService_CreateThenGet(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{
		Title:   "Hello",
		Content: "World",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, "Alice", got.User.Name)
}

func TestPostService_GetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(t, db, false)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_GetIsCachedUntilMutation(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	editor := seedUser(t, db, "Bob", "bob@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	post, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)

	first, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)

	// A write that sidesteps the service must not show up: the cached copy
	// is served until something invalidates it.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Update("title", "Sneaky").Error)

	second, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, "Hello", second.Title)

	// An update through the service evicts the stale entry.
	_, err = svc.Update(ctx, editor.ID, post.ID, &models.UpdatePostRequest{Title: "Fresh", Content: "Body"})
	require.NoError(t, err)

	third, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", third.Title)
	assert.Equal(t, "Body", third.Content)
}

func TestPostService_NonOwnerMayUpdateAndDeleteByDefault(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	post, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, other.ID, post.ID, &models.UpdatePostRequest{Title: "Edited", Content: "By Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, owner.ID, updated.UserID, "ownership never changes on update")

	require.NoError(t, svc.Delete(ctx, other.ID, post.ID))
}

func TestPostService_OwnershipEnforcedWhenConfigured(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	svc := newPostService(t, db, true)
	ctx := context.Background()

	post, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, post.ID, &models.UpdatePostRequest{Title: "Edited", Content: "By Bob"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, other.ID, post.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, owner.ID, post.ID, &models.UpdatePostRequest{Title: "Mine", Content: "Still mine"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, owner.ID, post.ID))
}

func TestPostService_DeleteThenRestore(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	post, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, post.ID))

	_, err = svc.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NoError(t, svc.Restore(ctx, post.ID))

	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Equal(t, owner.ID, got.UserID)
}

func TestPostService_RestoreMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(t, db, false)

	err := svc.Restore(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_ListNewestFirstWithOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	older := &models.Post{Title: "Older", Content: "first", UserID: owner.ID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Post{Title: "Newer", Content: "second", UserID: owner.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "Older", posts[1].Title)
	assert.Equal(t, "Alice", posts[0].User.Name)
}

func TestPostService_SearchMatchesTitleOrContent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	byTitle := &models.Post{Title: "Learning Go", Content: "notes", UserID: owner.ID, CreatedAt: time.Now().Add(-time.Hour)}
	byContent := &models.Post{Title: "Weekend", Content: "Wrote some Go", UserID: owner.ID, CreatedAt: time.Now()}
	unrelated := &models.Post{Title: "Gardening", Content: "tomatoes", UserID: owner.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(byTitle).Error)
	require.NoError(t, db.Create(byContent).Error)
	require.NoError(t, db.Create(unrelated).Error)

	posts, err := svc.Search(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Weekend", posts[0].Title)
	assert.Equal(t, "Learning Go", posts[1].Title)
}

func TestPostService_SearchResultsStayStaleUntilTTL(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	svc := newPostService(t, db, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "Go tips", Content: "one"})
	require.NoError(t, err)

	cached, err := svc.Search(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, cached, 1)

	_, err = svc.Create(ctx, owner.ID, &models.CreatePostRequest{Title: "More Go tips", Content: "two"})
	require.NoError(t, err)

	// Mutations never touch search keys, so the cached result set holds.
	stale, err := svc.Search(ctx, "Go")
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	// The listing key was invalidated by the create, so list() is fresh.
	posts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
