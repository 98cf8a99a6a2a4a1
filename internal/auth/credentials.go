package auth

import (
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"blog/internal/models"
)

// CredentialStore owns user records and password hashing.
type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Register creates a user with a bcrypt hash of password. The first user ever
// registered becomes the admin; everyone after is a member. The count and the
// insert run in one transaction so two racing first registrations cannot both
// claim the admin role.
func (c *CredentialStore) Register(email, password, name string) (*models.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, models.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		tx.Rollback()
		return nil, err
	}
	role := models.RoleMember
	if count == 0 {
		role = models.RoleAdmin
	}
	res, err := tx.Exec(`INSERT INTO users (email, name, password_hash, role) VALUES (?, ?, ?, ?)`,
		email, name, string(hash), string(role))
	if err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c.UserByID(int(id))
}

// Verify checks email and password and returns the matching user. The two
// failure modes are distinct errors; the login handler presents them
// identically to the caller.
func (c *CredentialStore) Verify(email, password string) (*models.User, error) {
	user, err := c.userByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrBadPassword
	}
	return user, nil
}

// UpdateCredentials overwrites a user's email and password hash. A conflict
// with another user's email surfaces as ErrDuplicateEmail.
func (c *CredentialStore) UpdateCredentials(userID int, newEmail, newPassword string) error {
	if newEmail == "" || newPassword == "" {
		return models.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := c.db.Exec(`UPDATE users SET email = ?, password_hash = ? WHERE id = ?`,
		newEmail, string(hash), userID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return models.ErrDuplicateEmail
		}
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

func (c *CredentialStore) UserByID(id int) (*models.User, error) {
	row := c.db.QueryRow(`SELECT id, email, name, password_hash, role, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (c *CredentialStore) userByEmail(email string) (*models.User, error) {
	row := c.db.QueryRow(`SELECT id, email, name, password_hash, role, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}
