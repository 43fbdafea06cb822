package services

import "github.com/james-tempus/domo-out-of-stock-alerts/internal/models"

// FilterRows selects the rows visible under a filter state, keeping their order.
// The result is always a fresh slice.
func FilterRows(rows []models.AlertRow, acknowledged models.AcknowledgedSet, state models.FilterState) []models.AlertRow {
	out := make([]models.AlertRow, 0, len(rows))
	for _, r := range rows {
		switch state {
		case models.FilterAcknowledged:
			if !acknowledged.Has(r.ProductID) {
				continue
			}
		case models.FilterAll:
		default:
			if acknowledged.Has(r.ProductID) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
