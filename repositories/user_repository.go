package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// UserRepository interface defines user database operations
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	IsBanned(ctx context.Context, firstName, lastName, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// userRepository implements UserRepository interface
type userRepository struct {
	db    *sql.DB
	hooks *EntityHooks
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, registry *HookRegistry) UserRepository {
	r := &userRepository{db: db}
	r.hooks = registry.Register(EntityUsers, func(ctx context.Context, id int) (any, error) {
		return r.GetByID(ctx, id)
	})
	return r
}

const userColumns = `id, first_name, last_name, email, password, role, phone_number,
	       age, country, school, t_shirt_size, dietary_restrictions,
	       checked_in, banned, created_at, updated_at`

// scanUser scans a user row from either *sql.Row or *sql.Rows
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var user models.User
	err := scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.PhoneNumber,
		&user.Age,
		&user.Country,
		&user.School,
		&user.TShirtSize,
		&user.DietaryRestrictions,
		&user.CheckedIn,
		&user.Banned,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves all users
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? COLLATE NOCASE`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// IsBanned reports whether a banned user exists with the given email,
// or with the given first and last name
func (r *userRepository) IsBanned(ctx context.Context, firstName, lastName, email string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE banned = 1
		  AND (email = ? COLLATE NOCASE
		       OR (first_name = ? COLLATE NOCASE AND last_name = ? COLLATE NOCASE))
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, email, firstName, lastName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check banned users: %w", err)
	}

	return count > 0, nil
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password, role, phone_number,
		                   age, country, school, t_shirt_size, dietary_restrictions,
		                   checked_in, banned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.Role,
		user.PhoneNumber,
		user.Age,
		user.Country,
		user.School,
		user.TShirtSize,
		user.DietaryRestrictions,
		user.CheckedIn,
		user.Banned,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	user.ID = int(id)
	user.CreatedAt = now
	user.UpdatedAt = now
	r.hooks.FireAfterCreate(ctx, user.ID, user)
	return nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, email = ?, password = ?, role = ?,
		    phone_number = ?, age = ?, country = ?, school = ?, t_shirt_size = ?,
		    dietary_restrictions = ?, checked_in = ?, banned = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	r.hooks.FireBeforeUpdate(ctx, user.ID, user)

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.Role,
		user.PhoneNumber,
		user.Age,
		user.Country,
		user.School,
		user.TShirtSize,
		user.DietaryRestrictions,
		user.CheckedIn,
		user.Banned,
		now,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found", user.ID)
	}

	user.UpdatedAt = now
	return nil
}

// Delete deletes a user by ID
func (r *userRepository) Delete(ctx context.Context, id int) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.hooks.FireBeforeDelete(ctx, id, user)

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found", id)
	}

	return nil
}

// Count returns the total number of users
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
