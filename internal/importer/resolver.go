package importer

import (
	"regexp"
	"strings"

	"spinadmin/pkg/models"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// nameLookup maps lowercased, trimmed campaign names to identifiers.
// On duplicate names the first entry wins.
type nameLookup map[string]string

func buildNameLookup(directory []models.CampaignSummary) nameLookup {
	lookup := make(nameLookup, len(directory))
	for _, c := range directory {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			continue
		}
		if _, exists := lookup[key]; !exists {
			lookup[key] = c.ID
		}
	}
	return lookup
}

// Resolve replaces human-entered campaign references with identifiers
// from the directory snapshot. The pass is fail-fast and all-or-nothing:
// the first unresolvable reference aborts the whole import with a
// ResolutionError, so partial batches are never submitted. Rows without
// a campaign reference pass through with no association.
func Resolve(file *ParsedFile, directory []models.CampaignSummary) ([]models.BulkLocationRow, error) {
	lookup := buildNameLookup(directory)

	rows := make([]models.BulkLocationRow, 0, len(file.Rows))
	for i, raw := range file.Rows {
		displayRow := i + 2 // data row 1 sits on source row 2, below the header

		row := models.BulkLocationRow{
			Name:          raw["name"],
			Address:       raw["address"],
			City:          raw["city"],
			State:         raw["state"],
			Type:          raw["type"],
			Latitude:      raw["latitude"],
			Longitude:     raw["longitude"],
			RadiusMeters:  raw["radiusMeters"],
			IsActive:      raw["isActive"],
			ContactPerson: raw["contactPerson"],
			ContactPhone:  raw["contactPhone"],
		}

		// campaignName is the template's column; the resolved identifier
		// replaces it and the name itself is never forwarded
		if name := strings.TrimSpace(raw["campaignName"]); name != "" {
			id, ok := lookup[strings.ToLower(name)]
			if !ok {
				return nil, &ResolutionError{Row: displayRow, Reference: name}
			}
			row.CampaignIDs = []string{id}
		} else if legacy := strings.TrimSpace(raw["campaignIds"]); legacy != "" {
			// legacy column: comma-separated mix of literal identifiers
			// and campaign names
			parts := strings.Split(legacy, ",")
			ids := make([]string, 0, len(parts))
			for _, part := range parts {
				part = strings.TrimSpace(part)
				if uuidPattern.MatchString(strings.ToLower(part)) {
					ids = append(ids, part)
					continue
				}
				id, ok := lookup[strings.ToLower(part)]
				if !ok {
					return nil, &ResolutionError{Row: displayRow, Reference: part}
				}
				ids = append(ids, id)
			}
			row.CampaignIDs = ids
		}

		rows = append(rows, row)
	}

	return rows, nil
}
