package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackvent/hackvent-backend/database"
	"github.com/hackvent/hackvent-backend/models"
)

// setupTestDB creates a throwaway database using the actual migration
// system
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func testUser(email string) *models.User {
	return &models.User{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      email,
		Password:   "$2a$10$hash",
		Role:       models.RoleParticipant,
		Age:        27,
		Country:    "UK",
		School:     "University of London",
		TShirtSize: "M",
	}
}

func testEvent(name string, active bool) *models.Event {
	return &models.Event{
		Name:      name,
		StartDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		CanChange: true,
		IsActive:  active,
	}
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, NewHookRegistry())
	ctx := context.Background()

	user := testUser("ada@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// Email lookup is case-insensitive
	found, err := repo.GetByEmail(ctx, "ADA@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Duplicate email is rejected
	err = repo.Create(ctx, testUser("ada@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	user.Banned = true
	require.NoError(t, repo.Update(ctx, user))

	// Matching by email
	banned, err := repo.IsBanned(ctx, "Someone", "Else", "ada@example.com")
	require.NoError(t, err)
	assert.True(t, banned)

	// Matching by name
	banned, err = repo.IsBanned(ctx, "ada", "lovelace", "other@example.com")
	require.NoError(t, err)
	assert.True(t, banned)

	banned, err = repo.IsBanned(ctx, "Grace", "Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.False(t, banned)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEventAndParticipantRepositories(t *testing.T) {
	db := setupTestDB(t)
	registry := NewHookRegistry()
	events := NewEventRepository(db, registry)
	users := NewUserRepository(db, registry)
	teams := NewTeamRepository(db, registry)
	participants := NewParticipantRepository(db)
	ctx := context.Background()

	event := testEvent("HackVent 2026", true)
	require.NoError(t, events.Create(ctx, event))

	inactive := testEvent("HackVent 2025", false)
	require.NoError(t, events.Create(ctx, inactive))

	active, err := events.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.ID, active.ID)

	user := testUser("ada@example.com")
	require.NoError(t, users.Create(ctx, user))

	_, err = participants.Register(ctx, event.ID, user.ID)
	require.NoError(t, err)

	// Re-registration to the same event is rejected
	_, err = participants.Register(ctx, event.ID, user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	team := &models.Team{EventID: event.ID, Name: "Bitwranglers"}
	require.NoError(t, teams.Create(ctx, team))

	require.NoError(t, participants.AssignToTeam(ctx, user.ID, event.ID, &team.ID))

	members, err := participants.GetByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, user.ID, members[0].UserID)
	assert.Equal(t, "Ada", members[0].FirstName)

	// Deleting the team clears the assignment but keeps registration
	require.NoError(t, teams.Delete(ctx, team.ID))

	registered, err := participants.GetByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, registered, 1)
	assert.Nil(t, registered[0].TeamID)

	// Assigning someone who never registered fails
	err = participants.AssignToTeam(ctx, 999, event.ID, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestSponsorRepository_ReassignAndDeleteTier(t *testing.T) {
	db := setupTestDB(t)
	registry := NewHookRegistry()
	events := NewEventRepository(db, registry)
	sponsors := NewSponsorRepository(db, registry)
	ctx := context.Background()

	event := testEvent("HackVent 2026", true)
	require.NoError(t, events.Create(ctx, event))

	bronze := &models.SponsorTier{Name: "Bronze", LowerThreshold: 0}
	silver := &models.SponsorTier{Name: "Silver", LowerThreshold: 5000}
	gold := &models.SponsorTier{Name: "Gold", LowerThreshold: 20000}
	for _, tier := range []*models.SponsorTier{bronze, silver, gold} {
		require.NoError(t, sponsors.CreateTier(ctx, tier))
	}

	big := &models.Sponsor{Name: "Big Corp", Amount: 25000}
	small := &models.Sponsor{Name: "Small LLC", Amount: 6000}
	require.NoError(t, sponsors.CreateSponsor(ctx, big))
	require.NoError(t, sponsors.CreateSponsor(ctx, small))

	bigBinding := &models.EventSponsor{EventID: event.ID, SponsorID: big.ID, TierID: &silver.ID}
	smallBinding := &models.EventSponsor{EventID: event.ID, SponsorID: small.ID, TierID: &silver.ID}
	require.NoError(t, sponsors.AddSponsorToEvent(ctx, bigBinding))
	require.NoError(t, sponsors.AddSponsorToEvent(ctx, smallBinding))

	count, err := sponsors.CountBindingsByTier(ctx, silver.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	bindings, err := sponsors.GetBindingsByTier(ctx, silver.ID)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	// The join carries each sponsor's contribution for re-bucketing
	amounts := map[int]int{bindings[0].ID: bindings[0].SponsorAmount, bindings[1].ID: bindings[1].SponsorAmount}
	assert.Equal(t, 25000, amounts[bigBinding.ID])
	assert.Equal(t, 6000, amounts[smallBinding.ID])

	reassignments := []models.TierReassignment{
		{BindingID: bigBinding.ID, NewTierID: &gold.ID},
		{BindingID: smallBinding.ID, NewTierID: &bronze.ID},
	}
	silverTier, err := sponsors.GetTierByID(ctx, silver.ID)
	require.NoError(t, err)
	require.NoError(t, sponsors.ReassignAndDeleteTier(ctx, silverTier, reassignments))

	// The tier is gone
	_, err = sponsors.GetTierByID(ctx, silver.ID)
	require.Error(t, err)

	// Both bindings moved
	moved, err := sponsors.GetBindingByID(ctx, bigBinding.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.TierID)
	assert.Equal(t, gold.ID, *moved.TierID)

	moved, err = sponsors.GetBindingByID(ctx, smallBinding.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.TierID)
	assert.Equal(t, bronze.ID, *moved.TierID)

	tiers, err := sponsors.GetTiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	// Ascending by threshold
	assert.Equal(t, "Bronze", tiers[0].Name)
	assert.Equal(t, "Gold", tiers[1].Name)
}

func TestSponsorRepository_ReassignAndDeleteTierRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	registry := NewHookRegistry()
	events := NewEventRepository(db, registry)
	sponsors := NewSponsorRepository(db, registry)
	ctx := context.Background()

	event := testEvent("HackVent 2026", true)
	require.NoError(t, events.Create(ctx, event))

	silver := &models.SponsorTier{Name: "Silver", LowerThreshold: 5000}
	require.NoError(t, sponsors.CreateTier(ctx, silver))

	corp := &models.Sponsor{Name: "Big Corp", Amount: 6000}
	require.NoError(t, sponsors.CreateSponsor(ctx, corp))

	binding := &models.EventSponsor{EventID: event.ID, SponsorID: corp.ID, TierID: &silver.ID}
	require.NoError(t, sponsors.AddSponsorToEvent(ctx, binding))

	// A reassignment to a tier that does not exist trips the foreign
	// key and aborts the transaction
	missing := 9999
	reassignments := []models.TierReassignment{
		{BindingID: binding.ID, NewTierID: &missing},
	}
	err := sponsors.ReassignAndDeleteTier(ctx, silver, reassignments)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reassign binding")

	// Neither the tier nor the binding changed
	kept, err := sponsors.GetTierByID(ctx, silver.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silver", kept.Name)

	untouched, err := sponsors.GetBindingByID(ctx, binding.ID)
	require.NoError(t, err)
	require.NotNil(t, untouched.TierID)
	assert.Equal(t, silver.ID, *untouched.TierID)
}

func TestHardwareRepository(t *testing.T) {
	db := setupTestDB(t)
	registry := NewHookRegistry()
	users := NewUserRepository(db, registry)
	hardware := NewHardwareRepository(db, registry)
	ctx := context.Background()

	item := &models.HardwareItem{
		Name:         "Raspberry Pi 4",
		SerialNumber: "RPI-001",
		Description:  "4GB model",
		Functional:   true,
	}
	require.NoError(t, hardware.Create(ctx, item))

	image := &models.HardwareImage{HardwareID: item.ID, ImageURL: "/img/pi4.jpg"}
	require.NoError(t, hardware.AddImage(ctx, image))

	items, err := hardware.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].ImageURLs, 1)
	assert.Equal(t, "/img/pi4.jpg", items[0].ImageURLs[0])

	holder := testUser("ada@example.com")
	require.NoError(t, users.Create(ctx, holder))

	require.NoError(t, hardware.SetHolder(ctx, item.ID, &holder.ID))

	held, err := hardware.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, held.HolderID)
	assert.Equal(t, holder.ID, *held.HolderID)

	require.NoError(t, hardware.SetHolder(ctx, item.ID, nil))

	returned, err := hardware.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, returned.HolderID)

	require.NoError(t, hardware.RemoveImage(ctx, image.ID))
	images, err := hardware.GetImages(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	actor := 1
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	entries := []*models.AuditLogEntry{
		{EntityType: "teams", RecordID: 1, Action: models.AuditCreate, NewValue: []byte(`{"name":"a"}`), ActorID: &actor, CreatedAt: base},
		{EntityType: "teams", RecordID: 1, Action: models.AuditUpdate, OldValue: []byte(`{"name":"a"}`), NewValue: []byte(`{"name":"b"}`), CreatedAt: base.Add(time.Hour)},
		{EntityType: "hardware", RecordID: 2, Action: models.AuditDelete, OldValue: []byte(`{"name":"pi"}`), CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, entry := range entries {
		require.NoError(t, repo.Append(ctx, entry))
	}

	// Unfiltered, newest first
	got, total, err := repo.Search(ctx, models.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 3)
	assert.Equal(t, models.AuditDelete, got[0].Action)

	// Entity filter
	got, total, err = repo.Search(ctx, models.AuditFilter{EntityType: "teams"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Actor filter
	got, total, err = repo.Search(ctx, models.AuditFilter{ActorID: &actor})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, models.AuditCreate, got[0].Action)

	// NULL snapshots stay nil, present ones round-trip
	assert.Nil(t, got[0].OldValue)
	assert.JSONEq(t, `{"name":"a"}`, string(got[0].NewValue))

	// Time window
	start := base.Add(30 * time.Minute)
	got, total, err = repo.Search(ctx, models.AuditFilter{Start: &start})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Ascending pagination
	got, total, err = repo.Search(ctx, models.AuditFilter{SortAsc: true, Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, models.AuditDelete, got[0].Action)
}

func TestHooksFireAroundMutations(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	var fired []string
	for _, hooks := range repos.Hooks.Entities() {
		if hooks.Name() != EntityEvents {
			continue
		}
		hooks.OnAfterCreate("test", func(ctx context.Context, recordID int, instance any) {
			fired = append(fired, "create")
		})
		hooks.OnBeforeUpdate("test", func(ctx context.Context, recordID int, instance any) {
			fired = append(fired, "update")
		})
		hooks.OnBeforeDelete("test", func(ctx context.Context, recordID int, instance any) {
			// The delete hook receives the persisted instance
			event, ok := instance.(*models.Event)
			require.True(t, ok)
			assert.Equal(t, "HackVent 2026", event.Name)
			fired = append(fired, "delete")
		})
	}

	event := testEvent("HackVent 2026", true)
	require.NoError(t, repos.Events.Create(ctx, event))
	require.NoError(t, repos.Events.Update(ctx, event))
	require.NoError(t, repos.Events.Delete(ctx, event.ID))

	assert.Equal(t, []string{"create", "update", "delete"}, fired)
}
