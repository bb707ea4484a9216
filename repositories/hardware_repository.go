package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// HardwareRepository defines hardware inventory database operations
type HardwareRepository interface {
	GetAll(ctx context.Context) ([]models.HardwareItem, error)
	GetByID(ctx context.Context, id int) (*models.HardwareItem, error)
	GetAvailability(ctx context.Context) ([]models.HardwareAvailability, error)
	Create(ctx context.Context, item *models.HardwareItem) error
	Update(ctx context.Context, item *models.HardwareItem) error
	SetHolder(ctx context.Context, id int, holderID *int) error
	Delete(ctx context.Context, id int) error

	GetImages(ctx context.Context, hardwareID int) ([]models.HardwareImage, error)
	AddImage(ctx context.Context, image *models.HardwareImage) error
	RemoveImage(ctx context.Context, imageID int) error
}

// hardwareRepository implements HardwareRepository interface
type hardwareRepository struct {
	db         *sql.DB
	hooks      *EntityHooks
	imageHooks *EntityHooks
}

// NewHardwareRepository creates a new hardware repository
func NewHardwareRepository(db *sql.DB, registry *HookRegistry) HardwareRepository {
	r := &hardwareRepository{db: db}
	r.hooks = registry.Register(EntityHardware, func(ctx context.Context, id int) (any, error) {
		return r.GetByID(ctx, id)
	})
	r.imageHooks = registry.Register(EntityHardwareImages, func(ctx context.Context, id int) (any, error) {
		return r.getImageByID(ctx, id)
	})
	return r
}

const hardwareColumns = `id, name, serial_number, description, functional, holder_id, created_at, updated_at`

func scanHardware(scan func(dest ...any) error) (*models.HardwareItem, error) {
	var item models.HardwareItem
	err := scan(
		&item.ID,
		&item.Name,
		&item.SerialNumber,
		&item.Description,
		&item.Functional,
		&item.HolderID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAll retrieves all hardware items with their image URLs
func (r *hardwareRepository) GetAll(ctx context.Context) ([]models.HardwareItem, error) {
	query := `SELECT ` + hardwareColumns + ` FROM hardware ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hardware: %w", err)
	}
	defer rows.Close()

	var items []models.HardwareItem
	byID := make(map[int]int) // hardware id -> index in items
	for rows.Next() {
		item, err := scanHardware(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hardware: %w", err)
		}
		byID[item.ID] = len(items)
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hardware: %w", err)
	}

	imageRows, err := r.db.QueryContext(ctx,
		`SELECT hardware_id, image_url FROM hardware_images ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hardware images: %w", err)
	}
	defer imageRows.Close()

	for imageRows.Next() {
		var hardwareID int
		var url string
		if err := imageRows.Scan(&hardwareID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan hardware image: %w", err)
		}
		if idx, ok := byID[hardwareID]; ok {
			items[idx].ImageURLs = append(items[idx].ImageURLs, url)
		}
	}
	if err = imageRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hardware images: %w", err)
	}

	return items, nil
}

// GetByID retrieves a hardware item by ID with its image URLs
func (r *hardwareRepository) GetByID(ctx context.Context, id int) (*models.HardwareItem, error) {
	query := `SELECT ` + hardwareColumns + ` FROM hardware WHERE id = ?`

	item, err := scanHardware(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hardware with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hardware: %w", err)
	}

	images, err := r.GetImages(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, image := range images {
		item.ImageURLs = append(item.ImageURLs, image.ImageURL)
	}

	return item, nil
}

// GetAvailability retrieves the slim name/serial availability listing
func (r *hardwareRepository) GetAvailability(ctx context.Context) ([]models.HardwareAvailability, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, serial_number FROM hardware ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hardware availability: %w", err)
	}
	defer rows.Close()

	var list []models.HardwareAvailability
	for rows.Next() {
		var a models.HardwareAvailability
		if err := rows.Scan(&a.Name, &a.SerialNumber); err != nil {
			return nil, fmt.Errorf("failed to scan hardware availability: %w", err)
		}
		list = append(list, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hardware availability: %w", err)
	}

	return list, nil
}

// Create creates a new hardware item
func (r *hardwareRepository) Create(ctx context.Context, item *models.HardwareItem) error {
	query := `
		INSERT INTO hardware (name, serial_number, description, functional, holder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.SerialNumber,
		item.Description,
		item.Functional,
		item.HolderID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create hardware: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	item.ID = int(id)
	item.CreatedAt = now
	item.UpdatedAt = now
	r.hooks.FireAfterCreate(ctx, item.ID, item)
	return nil
}

// Update updates an existing hardware item
func (r *hardwareRepository) Update(ctx context.Context, item *models.HardwareItem) error {
	query := `
		UPDATE hardware
		SET name = ?, serial_number = ?, description = ?, functional = ?, holder_id = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	r.hooks.FireBeforeUpdate(ctx, item.ID, item)

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.SerialNumber,
		item.Description,
		item.Functional,
		item.HolderID,
		now,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hardware: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("hardware with ID %d not found", item.ID)
	}

	item.UpdatedAt = now
	return nil
}

// SetHolder records who currently has the item checked out (nil on return)
func (r *hardwareRepository) SetHolder(ctx context.Context, id int, holderID *int) error {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	item.HolderID = holderID
	return r.Update(ctx, item)
}

// Delete deletes a hardware item by ID
func (r *hardwareRepository) Delete(ctx context.Context, id int) error {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.hooks.FireBeforeDelete(ctx, id, item)

	result, err := r.db.ExecContext(ctx, `DELETE FROM hardware WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hardware: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("hardware with ID %d not found", id)
	}

	return nil
}

// getImageByID retrieves a hardware image by ID
func (r *hardwareRepository) getImageByID(ctx context.Context, id int) (*models.HardwareImage, error) {
	var image models.HardwareImage
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hardware_id, image_url FROM hardware_images WHERE id = ?`, id).Scan(
		&image.ID, &image.HardwareID, &image.ImageURL)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hardware image with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hardware image: %w", err)
	}
	return &image, nil
}

// GetImages retrieves all images for a hardware item in insertion order
func (r *hardwareRepository) GetImages(ctx context.Context, hardwareID int) ([]models.HardwareImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hardware_id, image_url FROM hardware_images WHERE hardware_id = ? ORDER BY id ASC`,
		hardwareID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hardware images: %w", err)
	}
	defer rows.Close()

	var images []models.HardwareImage
	for rows.Next() {
		var image models.HardwareImage
		if err := rows.Scan(&image.ID, &image.HardwareID, &image.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan hardware image: %w", err)
		}
		images = append(images, image)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hardware images: %w", err)
	}

	return images, nil
}

// AddImage attaches an image to a hardware item
func (r *hardwareRepository) AddImage(ctx context.Context, image *models.HardwareImage) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO hardware_images (hardware_id, image_url) VALUES (?, ?)`,
		image.HardwareID, image.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to add hardware image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	image.ID = int(id)
	r.imageHooks.FireAfterCreate(ctx, image.ID, image)
	return nil
}

// RemoveImage removes a hardware image by ID
func (r *hardwareRepository) RemoveImage(ctx context.Context, imageID int) error {
	image, err := r.getImageByID(ctx, imageID)
	if err != nil {
		return err
	}

	r.imageHooks.FireBeforeDelete(ctx, imageID, image)

	result, err := r.db.ExecContext(ctx, `DELETE FROM hardware_images WHERE id = ?`, imageID)
	if err != nil {
		return fmt.Errorf("failed to remove hardware image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("hardware image with ID %d not found", imageID)
	}

	return nil
}
