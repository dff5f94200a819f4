// Package template generates the bulk-import spreadsheet offered to
// operators: the exact header vocabulary the importer expects, one
// example row, and a dropdown on the campaign-name column fed from the
// current campaign directory.
package template

import (
	"fmt"

	"spinadmin/pkg/models"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName      = "Locations Template"
	listSheetName  = "_CampaignList"
	campaignColumn = "L"

	// the dropdown covers a large fixed range so operators can paste
	// many rows without losing the constraint
	validationFirstRow = 2
	validationLastRow  = 1000
)

// FileName is the download name for the generated template
const FileName = "location_template.xlsx"

// Headers is the fixed column order. It must match the keys the
// resolver and the batch create endpoint expect.
var Headers = []string{
	"name", "address", "city", "state", "type",
	"latitude", "longitude", "radiusMeters", "isActive",
	"contactPerson", "contactPhone", "campaignName",
}

var columnWidths = []float64{20, 30, 15, 15, 15, 12, 12, 15, 12, 20, 15, 30}

// Generate builds the template workbook for the given campaign
// directory snapshot. With an empty directory the dropdown constraint
// is omitted and the file stays usable, just unconstrained.
func Generate(directory []models.CampaignSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(Headers))
	for i, h := range Headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	exampleCampaign := ""
	if len(directory) > 0 {
		exampleCampaign = directory[0].Name
	}
	exampleRow := []interface{}{
		"Sample Store 1", "123 Main Street", "Lagos", "Lagos", "supermarket",
		"6.5244", "3.3792", "500", "true",
		"John Doe", "08012345678", exampleCampaign,
	}
	if err := f.SetSheetRow(sheetName, "A2", &exampleRow); err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	if len(directory) > 0 {
		if err := addCampaignDropdown(f, directory); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addCampaignDropdown writes the campaign names to a hidden sheet and
// validates the campaign-name column against it. A sheet reference is
// used instead of an inline list because the directory is unbounded and
// a literal enumeration would corrupt the validation formula.
func addCampaignDropdown(f *excelize.File, directory []models.CampaignSummary) error {
	if _, err := f.NewSheet(listSheetName); err != nil {
		return err
	}
	for i, c := range directory {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(listSheetName, cell, c.Name); err != nil {
			return err
		}
	}
	if err := f.SetSheetVisible(listSheetName, false); err != nil {
		return err
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s%d:%s%d", campaignColumn, validationFirstRow, campaignColumn, validationLastRow)
	dv.SetSqrefDropList(fmt.Sprintf("%s!$A$1:$A$%d", listSheetName, len(directory)))
	dv.SetError(excelize.DataValidationErrorStyleStop,
		"Invalid Campaign", "Please select a valid campaign name from the dropdown")

	return f.AddDataValidation(sheetName, dv)
}
