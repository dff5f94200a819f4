package template

import (
	"bytes"
	"testing"

	"spinadmin/pkg/models"

	"github.com/xuri/excelize/v2"
)

var sampleDirectory = []models.CampaignSummary{
	{ID: "0c8ffb39-8347-4fc1-a179-7b1e69d2b0a6", Name: "Summer Promo", Status: "active"},
	{ID: "7631ee8a-87cf-4587-a290-3b603ddab006", Name: "Winter Sale", Status: "draft"},
}

func openGenerated(t *testing.T, directory []models.CampaignSummary) *excelize.File {
	t.Helper()

	data, err := Generate(directory)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestGenerateHeaders(t *testing.T) {
	f := openGenerated(t, sampleDirectory)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected header and example rows, got %d rows", len(rows))
	}

	for i, want := range Headers {
		if i >= len(rows[0]) || rows[0][i] != want {
			t.Errorf("header %d = %q, expected %q", i, rows[0][i], want)
		}
	}
	if rows[1][0] != "Sample Store 1" {
		t.Errorf("example row name = %q", rows[1][0])
	}
	if rows[1][len(Headers)-1] != "Summer Promo" {
		t.Errorf("example campaign = %q, expected first directory entry", rows[1][len(Headers)-1])
	}
}

func TestGenerateCampaignList(t *testing.T) {
	f := openGenerated(t, sampleDirectory)

	rows, err := f.GetRows(listSheetName)
	if err != nil {
		t.Fatalf("read campaign list sheet: %v", err)
	}
	if len(rows) != len(sampleDirectory) {
		t.Fatalf("list sheet has %d rows, expected %d", len(rows), len(sampleDirectory))
	}
	for i, c := range sampleDirectory {
		if rows[i][0] != c.Name {
			t.Errorf("list row %d = %q, expected %q", i, rows[i][0], c.Name)
		}
	}

	visible, err := f.GetSheetVisible(listSheetName)
	if err != nil {
		t.Fatalf("sheet visibility: %v", err)
	}
	if visible {
		t.Error("campaign list sheet should be hidden")
	}
}

func TestGenerateDropdownValidation(t *testing.T) {
	f := openGenerated(t, sampleDirectory)

	validations, err := f.GetDataValidations(sheetName)
	if err != nil {
		t.Fatalf("read validations: %v", err)
	}
	if len(validations) != 1 {
		t.Fatalf("expected 1 data validation, got %d", len(validations))
	}
	if validations[0].Sqref != "L2:L1000" {
		t.Errorf("validation range = %q", validations[0].Sqref)
	}
}

// An empty directory still produces a usable template, just without the
// dropdown constraint
func TestGenerateEmptyDirectory(t *testing.T) {
	f := openGenerated(t, nil)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows[0]) != len(Headers) {
		t.Errorf("header count = %d", len(rows[0]))
	}

	validations, err := f.GetDataValidations(sheetName)
	if err != nil {
		t.Fatalf("read validations: %v", err)
	}
	if len(validations) != 0 {
		t.Errorf("expected no validation with empty directory, got %d", len(validations))
	}

	for _, sheet := range f.GetSheetList() {
		if sheet == listSheetName {
			t.Error("campaign list sheet should not exist with empty directory")
		}
	}
}

// The template's columns must be the exact vocabulary the import parser
// produces rows under
func TestGenerateHeaderVocabulary(t *testing.T) {
	expected := []string{
		"name", "address", "city", "state", "type",
		"latitude", "longitude", "radiusMeters", "isActive",
		"contactPerson", "contactPhone", "campaignName",
	}
	if len(Headers) != len(expected) {
		t.Fatalf("Headers has %d entries, expected %d", len(Headers), len(expected))
	}
	for i, want := range expected {
		if Headers[i] != want {
			t.Errorf("Headers[%d] = %q, expected %q", i, Headers[i], want)
		}
	}
}
