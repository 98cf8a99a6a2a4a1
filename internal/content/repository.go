package content

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"blog/internal/models"
)

// DateFormat is the human-readable stamp shown on posts. It is a display
// string, not a sortable timestamp; ordering comes from insertion order.
const DateFormat = "January 2, 2006"

// Repository owns blog posts and comments. It is constructed once at startup
// and passed to whoever needs it; there is no ambient handle.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListPosts returns all posts newest first.
func (r *Repository) ListPosts() ([]models.Post, error) {
	rows, err := r.db.Query(`SELECT id, author_id, title, subtitle, body, img_url, date, created_at FROM posts ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.Date, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *Repository) GetPost(id int) (*models.Post, error) {
	row := r.db.QueryRow(`SELECT id, author_id, title, subtitle, body, img_url, date, created_at FROM posts WHERE id = ?`, id)
	var p models.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.Date, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost inserts a post authored by the acting principal, stamped with
// today's date. Title, subtitle, body, and image URL are all required.
func (r *Repository) CreatePost(author *models.User, title, subtitle, body, imgURL string) (*models.Post, error) {
	if author == nil {
		return nil, models.ErrUnauthenticated
	}
	if title == "" || subtitle == "" || body == "" || imgURL == "" {
		return nil, models.ErrValidation
	}
	date := time.Now().Format(DateFormat)
	res, err := r.db.Exec(`INSERT INTO posts (author_id, title, subtitle, body, img_url, date) VALUES (?, ?, ?, ?, ?, ?)`,
		author.ID, title, subtitle, body, imgURL, date)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: posts.title") {
			return nil, models.ErrDuplicateTitle
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetPost(int(id))
}

// UpdatePost overwrites the four mutable fields in place. The id, author, and
// date stamp never change.
func (r *Repository) UpdatePost(id int, title, subtitle, body, imgURL string) (*models.Post, error) {
	if title == "" || subtitle == "" || body == "" || imgURL == "" {
		return nil, models.ErrValidation
	}
	res, err := r.db.Exec(`UPDATE posts SET title = ?, subtitle = ?, body = ?, img_url = ? WHERE id = ?`,
		title, subtitle, body, imgURL, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: posts.title") {
			return nil, models.ErrDuplicateTitle
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetPost(id)
}

// DeletePost removes a post and all of its comments in one transaction.
// Comments must never outlive their parent post, so a failure at either step
// rolls the whole thing back.
func (r *Repository) DeletePost(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return models.ErrNotFound
	}
	return tx.Commit()
}

// AddComment persists a comment by author on the given post.
func (r *Repository) AddComment(postID int, author *models.User, text string) (*models.Comment, error) {
	if author == nil {
		return nil, models.ErrUnauthenticated
	}
	if text == "" {
		return nil, models.ErrValidation
	}
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM posts WHERE id = ?`, postID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	res, err := r.db.Exec(`INSERT INTO comments (post_id, author_id, body) VALUES (?, ?, ?)`, postID, author.ID, text)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetComment(int(id))
}

func (r *Repository) GetComment(id int) (*models.Comment, error) {
	row := r.db.QueryRow(`SELECT c.id, c.post_id, c.author_id, u.name, c.body, c.created_at
        FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id = ?`, id)
	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComments returns a post's comments oldest first, with author names
// attached for display.
func (r *Repository) ListComments(postID int) ([]models.Comment, error) {
	rows, err := r.db.Query(`SELECT c.id, c.post_id, c.author_id, u.name, c.body, c.created_at
        FROM comments c JOIN users u ON u.id = c.author_id WHERE c.post_id = ? ORDER BY c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cs []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func (r *Repository) DeleteComment(id int) error {
	res, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
