package content

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/db"
	"blog/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func seedUser(t *testing.T, database *sql.DB, email, name string) *models.User {
	t.Helper()
	res, err := database.Exec(`INSERT INTO users (email, name, password_hash, role) VALUES (?, ?, 'x', 'member')`, email, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return &models.User{ID: int(id), Email: email, Name: name, Role: models.RoleMember}
}

func TestCreateAndGetPost(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	post, err := repo.CreatePost(author, "Hello", "First one", "Some body", "http://img/1.png")
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.NotEmpty(t, post.Date)

	got, err := repo.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	_, err = repo.GetPost(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreatePostValidation(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	_, err := repo.CreatePost(nil, "T", "S", "B", "I")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = repo.CreatePost(author, "", "S", "B", "I")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = repo.CreatePost(author, "T", "S", "", "I")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	first, err := repo.CreatePost(author, "Same Title", "S", "B", "I")
	require.NoError(t, err)

	_, err = repo.CreatePost(author, "Same Title", "S2", "B2", "I2")
	assert.ErrorIs(t, err, models.ErrDuplicateTitle)

	// the first post is unaffected
	got, err := repo.GetPost(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "S", got.Subtitle)
}

func TestListPostsNewestFirst(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	for i := 1; i <= 3; i++ {
		_, err := repo.CreatePost(author, fmt.Sprintf("Post %d", i), "S", "B", "I")
		require.NoError(t, err)
	}

	posts, err := repo.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Post 3", posts[0].Title)
	assert.Equal(t, "Post 1", posts[2].Title)
}

func TestUpdatePost(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	post, err := repo.CreatePost(author, "Old", "Old sub", "Old body", "old.png")
	require.NoError(t, err)

	updated, err := repo.UpdatePost(post.ID, "New", "New sub", "New body", "new.png")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, post.AuthorID, updated.AuthorID)
	assert.Equal(t, post.Date, updated.Date)

	_, err = repo.UpdatePost(999, "T", "S", "B", "I")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeletePostCascade(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")
	commenter := seedUser(t, database, "c@d.com", "Bob")

	post, err := repo.CreatePost(author, "Doomed", "S", "B", "I")
	require.NoError(t, err)

	var commentIDs []int
	for i := 0; i < 3; i++ {
		c, err := repo.AddComment(post.ID, commenter, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
		commentIDs = append(commentIDs, c.ID)
	}

	require.NoError(t, repo.DeletePost(post.ID))

	_, err = repo.GetPost(post.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	for _, id := range commentIDs {
		_, err := repo.GetComment(id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	}

	assert.ErrorIs(t, repo.DeletePost(post.ID), models.ErrNotFound)
}

func TestAddComment(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	post, err := repo.CreatePost(author, "Post", "S", "B", "I")
	require.NoError(t, err)

	comment, err := repo.AddComment(post.ID, author, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "Alice", comment.AuthorName)
	assert.Equal(t, post.ID, comment.PostID)

	comments, err := repo.ListComments(post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestAddCommentFailures(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	post, err := repo.CreatePost(author, "Post", "S", "B", "I")
	require.NoError(t, err)

	_, err = repo.AddComment(post.ID, nil, "anon comment")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = repo.AddComment(999, author, "lost comment")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.AddComment(post.ID, author, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	// none of the failures left a row behind
	comments, err := repo.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	author := seedUser(t, database, "a@b.com", "Alice")

	post, err := repo.CreatePost(author, "Post", "S", "B", "I")
	require.NoError(t, err)
	comment, err := repo.AddComment(post.ID, author, "bye")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteComment(comment.ID))
	assert.ErrorIs(t, repo.DeleteComment(comment.ID), models.ErrNotFound)
}
