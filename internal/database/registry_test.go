package database

import (
	"context"
	"errors"
	"testing"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestAttendants_CreateAndFind(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	attendant := models.Attendant{Code: "joao", Name: "Joao Silva", MonthlyCost: decimal.RequireFromString("400")}
	if err := service.Attendants().Create(ctx, attendant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Lookup is case-insensitive.
	found, err := service.Attendants().FindByCode(ctx, "JOAO")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if found.Name != "Joao Silva" {
		t.Errorf("Expected Joao Silva, got %s", found.Name)
	}
	if !found.MonthlyCost.Equal(decimal.RequireFromString("400")) {
		t.Errorf("Expected monthly cost 400, got %s", found.MonthlyCost)
	}
}

func TestAttendants_DuplicateCode(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	attendant := models.Attendant{Code: "joao", Name: "Joao Silva", MonthlyCost: decimal.Zero}
	if err := service.Attendants().Create(ctx, attendant); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	err := service.Attendants().Create(ctx, attendant)
	if !errors.Is(err, store.ErrDuplicateCode) {
		t.Errorf("Expected ErrDuplicateCode, got: %v", err)
	}
}

func TestAttendants_ListAllExcludesReserved(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Attendants().Create(ctx, models.Attendant{Code: "joao", Name: "Joao", MonthlyCost: decimal.Zero}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	attendants, err := service.Attendants().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, attendant := range attendants {
		if attendant.Code == models.UnassignedAttendant.Code {
			t.Errorf("Reserved attendant must not appear in ListAll")
		}
	}
	if len(attendants) != 1 {
		t.Errorf("Expected 1 attendant, got %d", len(attendants))
	}
}

func TestAttendants_ReservedEntrySeeded(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	found, err := service.Attendants().FindByCode(context.Background(), models.UnassignedAttendant.Code)
	if err != nil {
		t.Fatalf("Reserved attendant missing after schema init: %v", err)
	}
	if found.Name != models.UnassignedAttendant.Name {
		t.Errorf("Expected %s, got %s", models.UnassignedAttendant.Name, found.Name)
	}
}

func TestAttendants_UpdateAndDelete(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Attendants().Create(ctx, models.Attendant{Code: "joao", Name: "Joao", MonthlyCost: decimal.Zero}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated := models.Attendant{Code: "joao", Name: "Joao Atualizado", MonthlyCost: decimal.RequireFromString("550.50")}
	if err := service.Attendants().Update(ctx, "joao", updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	found, err := service.Attendants().FindByCode(ctx, "joao")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if found.Name != "Joao Atualizado" || !found.MonthlyCost.Equal(decimal.RequireFromString("550.50")) {
		t.Errorf("Update not applied: %s %s", found.Name, found.MonthlyCost)
	}

	if err := service.Attendants().Update(ctx, "zzzz", updated); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown code, got: %v", err)
	}

	if err := service.Attendants().Delete(ctx, "joao"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := service.Attendants().FindByCode(ctx, "joao"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got: %v", err)
	}
	if err := service.Attendants().Delete(ctx, "joao"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for second delete, got: %v", err)
	}
}

func TestCampaigns_Crud(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	campaign := models.Campaign{Code: "verao", Name: "Summer launch", Cost: decimal.RequireFromString("600")}
	if err := service.Campaigns().Create(ctx, campaign); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := service.Campaigns().Create(ctx, campaign); !errors.Is(err, store.ErrDuplicateCode) {
		t.Errorf("Expected ErrDuplicateCode, got: %v", err)
	}

	found, err := service.Campaigns().FindByCode(ctx, "VERAO")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if !found.Cost.Equal(decimal.RequireFromString("600")) {
		t.Errorf("Expected cost 600, got %s", found.Cost)
	}

	campaigns, err := service.Campaigns().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(campaigns) != 1 {
		t.Errorf("Expected 1 campaign (reserved excluded), got %d", len(campaigns))
	}

	if err := service.Campaigns().Delete(ctx, "verao"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := service.Campaigns().FindByCode(ctx, "verao"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got: %v", err)
	}
}

func TestCampaigns_ReservedEntrySeeded(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	found, err := service.Campaigns().FindByCode(context.Background(), models.UndefinedCampaign.Code)
	if err != nil {
		t.Fatalf("Reserved campaign missing after schema init: %v", err)
	}
	if found.Name != models.UndefinedCampaign.Name {
		t.Errorf("Expected %s, got %s", models.UndefinedCampaign.Name, found.Name)
	}
}

func TestSettings_DefaultsWhenEmpty(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	settings, err := service.Settings().Get(context.Background())
	if err != nil {
		t.Fatalf("Get on empty settings failed: %v", err)
	}
	if settings.UserName != "" || !settings.MonthlyInvestment.IsZero() {
		t.Errorf("Expected zero-value defaults, got %+v", settings)
	}
}

func TestSettings_SaveAndGet(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	saved := models.Settings{
		UserName:          "Demo User",
		UserEmail:         "demo@example.com",
		MonthlyInvestment: decimal.RequireFromString("1500"),
	}
	if err := service.Settings().Save(ctx, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	settings, err := service.Settings().Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.UserName != "Demo User" || !settings.MonthlyInvestment.Equal(decimal.RequireFromString("1500")) {
		t.Errorf("Settings round trip mismatch: %+v", settings)
	}

	// Save is a replace, not an insert.
	saved.MonthlyInvestment = decimal.RequireFromString("2000")
	if err := service.Settings().Save(ctx, saved); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	settings, err = service.Settings().Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !settings.MonthlyInvestment.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("Expected 2000 after replace, got %s", settings.MonthlyInvestment)
	}
}
