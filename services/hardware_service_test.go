package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// mockHardwareRepository is a hand-written mock backed by function
// fields, so each test only wires the calls it expects
type mockHardwareRepository struct {
	getAllFn    func(ctx context.Context) ([]models.HardwareItem, error)
	getByIDFn   func(ctx context.Context, id int) (*models.HardwareItem, error)
	setHolderFn func(ctx context.Context, id int, holderID *int) error
}

var _ repositories.HardwareRepository = (*mockHardwareRepository)(nil)

func (m *mockHardwareRepository) GetAll(ctx context.Context) ([]models.HardwareItem, error) {
	return m.getAllFn(ctx)
}

func (m *mockHardwareRepository) GetByID(ctx context.Context, id int) (*models.HardwareItem, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockHardwareRepository) GetAvailability(ctx context.Context) ([]models.HardwareAvailability, error) {
	return nil, nil
}

func (m *mockHardwareRepository) Create(ctx context.Context, item *models.HardwareItem) error {
	return nil
}

func (m *mockHardwareRepository) Update(ctx context.Context, item *models.HardwareItem) error {
	return nil
}

func (m *mockHardwareRepository) SetHolder(ctx context.Context, id int, holderID *int) error {
	return m.setHolderFn(ctx, id, holderID)
}

func (m *mockHardwareRepository) Delete(ctx context.Context, id int) error { return nil }

func (m *mockHardwareRepository) GetImages(ctx context.Context, hardwareID int) ([]models.HardwareImage, error) {
	return nil, nil
}

func (m *mockHardwareRepository) AddImage(ctx context.Context, image *models.HardwareImage) error {
	return nil
}

func (m *mockHardwareRepository) RemoveImage(ctx context.Context, imageID int) error { return nil }

func itemsNamed(names ...string) []models.HardwareItem {
	items := make([]models.HardwareItem, 0, len(names))
	for i, name := range names {
		items = append(items, models.HardwareItem{ID: i + 1, Name: name, Functional: true})
	}
	return items
}

func familyTitles(families []models.HardwareFamily) []string {
	titles := make([]string, 0, len(families))
	for _, family := range families {
		titles = append(titles, family.Title)
	}
	return titles
}

func TestGroupByFamily_SharedPrefixFormsFamily(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	families := service.GroupByFamily(itemsNamed(
		"Raspberry Pi 4",
		"Raspberry Pi Zero",
		"Raspberry Pi Camera Module",
		"Arduino Uno",
	))

	require.Len(t, families, 2)
	assert.Equal(t, "Raspberry Pi", families[0].Title)
	assert.Equal(t, "raspberry-pi", families[0].FamilyID)
	require.Len(t, families[0].Items, 3)

	assert.Equal(t, "Raspberry Pi 4", families[0].Items[0].FullName)
	assert.Equal(t, "4", families[0].Items[0].Name)
	assert.Equal(t, "4", families[0].Items[0].Subtitle)
	assert.Equal(t, "Camera Module", families[0].Items[2].Subtitle)

	// Singleton falls back to first-word grouping
	assert.Equal(t, "Arduino", families[1].Title)
	assert.Equal(t, "Uno", families[1].Items[0].Subtitle)
}

func TestGroupByFamily_SingleOccurrencePrefixIsNotAFamily(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	families := service.GroupByFamily(itemsNamed(
		"Logitech Webcam",
		"Oculus Quest 2",
	))

	// No shared prefixes, every item groups under its first word
	assert.Equal(t, []string{"Logitech", "Oculus"}, familyTitles(families))
}

func TestGroupByFamily_LongerPrefixCoveredByShorter(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	// "Intel RealSense Depth" also repeats, but "Intel RealSense"
	// already covers it, so one family holds all three items
	families := service.GroupByFamily(itemsNamed(
		"Intel RealSense Depth Camera",
		"Intel RealSense Depth Module",
		"Intel RealSense Tracking Camera",
	))

	require.Len(t, families, 1)
	assert.Equal(t, "Intel RealSense", families[0].Title)
	require.Len(t, families[0].Items, 3)
	assert.Equal(t, "Depth Camera", families[0].Items[0].Subtitle)
}

func TestGroupByFamily_SingleWordNames(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	families := service.GroupByFamily(itemsNamed("Multimeter", "Soldering Iron"))

	require.Len(t, families, 2)
	assert.Equal(t, "Multimeter", families[0].Title)
	// Single-word title doubles as the item label
	assert.Equal(t, "Multimeter", families[0].Items[0].Name)
	assert.Equal(t, "", families[0].Items[0].Subtitle)
}

func TestGroupByFamily_Empty(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	families := service.GroupByFamily(nil)

	assert.Empty(t, families)
}

func TestGroupByFamily_EveryItemAppearsExactlyOnce(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	items := itemsNamed(
		"Raspberry Pi 4",
		"Raspberry Pi Zero",
		"Arduino Uno",
		"Arduino Nano",
		"Multimeter",
	)
	families := service.GroupByFamily(items)

	seen := make(map[string]int)
	for _, family := range families {
		for _, item := range family.Items {
			seen[item.FullName]++
		}
	}

	require.Len(t, seen, len(items))
	for _, item := range items {
		assert.Equal(t, 1, seen[item.Name], "item %q", item.Name)
	}
}

func TestGroupByFamily_UnavailabilityFromHolder(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	holder := 7
	items := itemsNamed("Raspberry Pi 4", "Raspberry Pi Zero")
	items[0].HolderID = &holder

	families := service.GroupByFamily(items)

	require.Len(t, families, 1)
	assert.True(t, families[0].Items[0].IsUnavailable)
	assert.False(t, families[0].Items[1].IsUnavailable)
}

func TestGroupByFamily_FirstImageWins(t *testing.T) {
	service := NewHardwareService(&mockHardwareRepository{})

	items := itemsNamed("Raspberry Pi 4", "Raspberry Pi Zero")
	items[0].ImageURLs = []string{"/img/pi4-front.jpg", "/img/pi4-back.jpg"}

	families := service.GroupByFamily(items)

	require.Len(t, families, 1)
	require.NotNil(t, families[0].Items[0].Image)
	assert.Equal(t, "/img/pi4-front.jpg", *families[0].Items[0].Image)
	assert.Nil(t, families[0].Items[1].Image)
}

func TestGetCatalog_PropagatesRepositoryFailure(t *testing.T) {
	repo := &mockHardwareRepository{
		getAllFn: func(ctx context.Context) ([]models.HardwareItem, error) {
			return nil, assert.AnError
		},
	}
	service := NewHardwareService(repo)

	_, err := service.GetCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	holder := 3

	t.Run("lends an available item", func(t *testing.T) {
		var setTo *int
		repo := &mockHardwareRepository{
			getByIDFn: func(ctx context.Context, id int) (*models.HardwareItem, error) {
				return &models.HardwareItem{ID: id, Name: "Multimeter", Functional: true}, nil
			},
			setHolderFn: func(ctx context.Context, id int, holderID *int) error {
				setTo = holderID
				return nil
			},
		}
		service := NewHardwareService(repo)

		require.NoError(t, service.Checkout(ctx, 1, 42))
		require.NotNil(t, setTo)
		assert.Equal(t, 42, *setTo)
	})

	t.Run("rejects an item already checked out", func(t *testing.T) {
		repo := &mockHardwareRepository{
			getByIDFn: func(ctx context.Context, id int) (*models.HardwareItem, error) {
				return &models.HardwareItem{ID: id, Name: "Multimeter", Functional: true, HolderID: &holder}, nil
			},
		}
		service := NewHardwareService(repo)

		err := service.Checkout(ctx, 1, 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already checked out")
	})

	t.Run("rejects a broken item", func(t *testing.T) {
		repo := &mockHardwareRepository{
			getByIDFn: func(ctx context.Context, id int) (*models.HardwareItem, error) {
				return &models.HardwareItem{ID: id, Name: "Multimeter", Functional: false}, nil
			},
		}
		service := NewHardwareService(repo)

		err := service.Checkout(ctx, 1, 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not functional")
	})
}

func TestReturn(t *testing.T) {
	ctx := context.Background()
	holder := 3

	t.Run("clears the holder", func(t *testing.T) {
		cleared := false
		repo := &mockHardwareRepository{
			getByIDFn: func(ctx context.Context, id int) (*models.HardwareItem, error) {
				return &models.HardwareItem{ID: id, Name: "Multimeter", Functional: true, HolderID: &holder}, nil
			},
			setHolderFn: func(ctx context.Context, id int, holderID *int) error {
				cleared = holderID == nil
				return nil
			},
		}
		service := NewHardwareService(repo)

		require.NoError(t, service.Return(ctx, 1))
		assert.True(t, cleared)
	})

	t.Run("rejects an item nobody holds", func(t *testing.T) {
		repo := &mockHardwareRepository{
			getByIDFn: func(ctx context.Context, id int) (*models.HardwareItem, error) {
				return &models.HardwareItem{ID: id, Name: "Multimeter", Functional: true}, nil
			},
		}
		service := NewHardwareService(repo)

		err := service.Return(ctx, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not checked out")
	})
}
