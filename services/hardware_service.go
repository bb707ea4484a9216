package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// HardwareService interface defines hardware inventory business logic
type HardwareService interface {
	GetCatalog(ctx context.Context) ([]models.HardwareFamily, error)
	GroupByFamily(items []models.HardwareItem) []models.HardwareFamily
	GetAllItems(ctx context.Context) ([]models.HardwareItem, error)
	GetItemByID(ctx context.Context, id int) (*models.HardwareItem, error)
	GetAvailability(ctx context.Context) ([]models.HardwareAvailability, error)
	CreateItem(ctx context.Context, form *models.HardwareForm) (*models.HardwareItem, error)
	UpdateItem(ctx context.Context, id int, form *models.HardwareForm) (*models.HardwareItem, error)
	DeleteItem(ctx context.Context, id int) error
	Checkout(ctx context.Context, id, userID int) error
	Return(ctx context.Context, id int) error
	GetImages(ctx context.Context, hardwareID int) ([]models.HardwareImage, error)
	AddImage(ctx context.Context, hardwareID int, form *models.HardwareImageForm) (*models.HardwareImage, error)
	RemoveImage(ctx context.Context, imageID int) error
}

// hardwareService implements HardwareService interface
type hardwareService struct {
	hardwareRepo repositories.HardwareRepository
}

// NewHardwareService creates a new hardware service
func NewHardwareService(hardwareRepo repositories.HardwareRepository) HardwareService {
	return &hardwareService{hardwareRepo: hardwareRepo}
}

// GetCatalog loads the full inventory and partitions it into display
// families
func (s *hardwareService) GetCatalog(ctx context.Context) ([]models.HardwareFamily, error) {
	items, err := s.hardwareRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hardware catalog: %w", err)
	}
	return s.GroupByFamily(items), nil
}

// GroupByFamily partitions hardware items into named display families
// so that "Raspberry Pi 4", "Raspberry Pi Zero" and "Raspberry Pi
// Camera Module" share one "Raspberry Pi" heading instead of splitting
// into singleton groups. Families appear in the order they are first
// encountered while scanning the item list; items keep catalog order.
func (s *hardwareService) GroupByFamily(items []models.HardwareItem) []models.HardwareFamily {
	families := findFamilyCandidates(items)

	var order []string
	grouped := make(map[string]*models.HardwareFamily)

	for _, item := range items {
		title, subtitle := splitName(item.Name)

		for _, family := range families {
			if strings.HasPrefix(item.Name, family) {
				title = family
				subtitle = strings.TrimSpace(strings.TrimPrefix(item.Name, family))
				break
			}
		}

		group, ok := grouped[title]
		if !ok {
			group = &models.HardwareFamily{
				FamilyID: models.FamilySlug(title),
				Title:    title,
			}
			grouped[title] = group
			order = append(order, title)
		}

		label := subtitle
		if label == "" {
			label = title
		}

		var image *string
		if len(item.ImageURLs) > 0 {
			image = &item.ImageURLs[0]
		}

		group.Items = append(group.Items, models.HardwareFamilyItem{
			FullName:      item.Name,
			Name:          label,
			Subtitle:      subtitle,
			Description:   item.Description,
			Image:         image,
			IsUnavailable: item.HolderID != nil,
		})
	}

	result := make([]models.HardwareFamily, 0, len(order))
	for _, title := range order {
		result = append(result, *grouped[title])
	}
	return result
}

// findFamilyCandidates detects multi-word family names: the 2- and
// 3-token prefixes shared by at least two items, reduced to a minimal
// covering set (a candidate is dropped when a shorter candidate plus a
// space already prefixes it). Candidates are ordered deterministically:
// shorter prefixes first, then by first encounter in the item list.
func findFamilyCandidates(items []models.HardwareItem) []string {
	counts := make(map[string]int)
	var twoToken, threeToken []string

	for _, item := range items {
		words := strings.Fields(item.Name)

		if len(words) >= 2 {
			prefix := strings.Join(words[:2], " ")
			if counts[prefix] == 0 {
				twoToken = append(twoToken, prefix)
			}
			counts[prefix]++
		}

		if len(words) >= 3 {
			prefix := strings.Join(words[:3], " ")
			if counts[prefix] == 0 {
				threeToken = append(threeToken, prefix)
			}
			counts[prefix]++
		}
	}

	var candidates []string
	for _, prefix := range append(twoToken, threeToken...) {
		if counts[prefix] < 2 {
			continue
		}
		covered := false
		for _, existing := range candidates {
			if strings.HasPrefix(prefix, existing+" ") {
				covered = true
				break
			}
		}
		if !covered {
			candidates = append(candidates, prefix)
		}
	}

	return candidates
}

// splitName falls back to the first whitespace token as the group
// title, with the remainder as subtitle
func splitName(name string) (title, subtitle string) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "", ""
	}
	return words[0], strings.Join(words[1:], " ")
}

// GetAllItems retrieves the flat admin inventory listing
func (s *hardwareService) GetAllItems(ctx context.Context) ([]models.HardwareItem, error) {
	return s.hardwareRepo.GetAll(ctx)
}

// GetItemByID retrieves one hardware item
func (s *hardwareService) GetItemByID(ctx context.Context, id int) (*models.HardwareItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid hardware ID: %d", id)
	}
	return s.hardwareRepo.GetByID(ctx, id)
}

// GetAvailability retrieves the name/serial availability listing
func (s *hardwareService) GetAvailability(ctx context.Context) ([]models.HardwareAvailability, error) {
	return s.hardwareRepo.GetAvailability(ctx)
}

// CreateItem creates a new hardware item with validation
func (s *hardwareService) CreateItem(ctx context.Context, form *models.HardwareForm) (*models.HardwareItem, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	item := &models.HardwareItem{
		Name:         strings.TrimSpace(form.Name),
		SerialNumber: strings.TrimSpace(form.SerialNumber),
		Description:  strings.TrimSpace(form.Description),
		Functional:   form.Functional,
	}

	if err := s.hardwareRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create hardware: %w", err)
	}
	return item, nil
}

// UpdateItem updates an existing hardware item
func (s *hardwareService) UpdateItem(ctx context.Context, id int, form *models.HardwareForm) (*models.HardwareItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid hardware ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	item, err := s.hardwareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hardware not found: %w", err)
	}

	item.Name = strings.TrimSpace(form.Name)
	item.SerialNumber = strings.TrimSpace(form.SerialNumber)
	item.Description = strings.TrimSpace(form.Description)
	item.Functional = form.Functional

	if err := s.hardwareRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update hardware: %w", err)
	}
	return item, nil
}

// DeleteItem deletes a hardware item
func (s *hardwareService) DeleteItem(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid hardware ID: %d", id)
	}
	return s.hardwareRepo.Delete(ctx, id)
}

// Checkout lends an item to a user
func (s *hardwareService) Checkout(ctx context.Context, id, userID int) error {
	item, err := s.hardwareRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("hardware not found: %w", err)
	}
	if item.HolderID != nil {
		return fmt.Errorf("hardware %q is already checked out", item.Name)
	}
	if !item.Functional {
		return fmt.Errorf("hardware %q is not functional", item.Name)
	}
	return s.hardwareRepo.SetHolder(ctx, id, &userID)
}

// Return marks a lent item as returned
func (s *hardwareService) Return(ctx context.Context, id int) error {
	item, err := s.hardwareRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("hardware not found: %w", err)
	}
	if item.HolderID == nil {
		return fmt.Errorf("hardware %q is not checked out", item.Name)
	}
	return s.hardwareRepo.SetHolder(ctx, id, nil)
}

// GetImages retrieves all images attached to a hardware item
func (s *hardwareService) GetImages(ctx context.Context, hardwareID int) ([]models.HardwareImage, error) {
	return s.hardwareRepo.GetImages(ctx, hardwareID)
}

// AddImage attaches an image to a hardware item
func (s *hardwareService) AddImage(ctx context.Context, hardwareID int, form *models.HardwareImageForm) (*models.HardwareImage, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	if _, err := s.hardwareRepo.GetByID(ctx, hardwareID); err != nil {
		return nil, fmt.Errorf("hardware not found: %w", err)
	}

	image := &models.HardwareImage{
		HardwareID: hardwareID,
		ImageURL:   form.ImageURL,
	}
	if err := s.hardwareRepo.AddImage(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to add hardware image: %w", err)
	}
	return image, nil
}

// RemoveImage removes a hardware image
func (s *hardwareService) RemoveImage(ctx context.Context, imageID int) error {
	if imageID <= 0 {
		return fmt.Errorf("invalid image ID: %d", imageID)
	}
	return s.hardwareRepo.RemoveImage(ctx, imageID)
}
