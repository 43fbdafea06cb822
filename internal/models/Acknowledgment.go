package models

import "time"

const DefaultAcknowledgedBy = "user"

// AcknowledgmentRecord is the persisted proof that someone handled an alert.
// Category, AlertID and OriginalAlertDate are denormalized for audit only.
type AcknowledgmentRecord struct {
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName"`
	Category          string    `json:"category,omitempty"`
	AlertID           string    `json:"alertId,omitempty"`
	OriginalAlertDate string    `json:"originalAlertDate,omitempty"`
	AcknowledgedAt    time.Time `json:"acknowledgedAt"`
	AcknowledgedBy    string    `json:"acknowledgedBy"`
}

func NewAcknowledgmentRecord(row AlertRow, user string, at time.Time) AcknowledgmentRecord {
	if user == "" {
		user = DefaultAcknowledgedBy
	}
	return AcknowledgmentRecord{
		ProductID:         row.ProductID,
		ProductName:       row.ProductName,
		Category:          row.Category,
		AlertID:           row.ID,
		OriginalAlertDate: row.AlertDate,
		AcknowledgedAt:    at.UTC(),
		AcknowledgedBy:    user,
	}
}

// AcknowledgedSet is the set of acknowledged product ids.
type AcknowledgedSet map[string]struct{}

func NewAcknowledgedSet(productIDs ...string) AcknowledgedSet {
	set := make(AcknowledgedSet, len(productIDs))
	for _, id := range productIDs {
		set[id] = struct{}{}
	}
	return set
}

func (s AcknowledgedSet) Has(productID string) bool {
	_, ok := s[productID]
	return ok
}

func (s AcknowledgedSet) Add(productID string) {
	s[productID] = struct{}{}
}

func (s AcknowledgedSet) Remove(productID string) {
	delete(s, productID)
}

func (s AcknowledgedSet) Clone() AcknowledgedSet {
	out := make(AcknowledgedSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// AcknowledgedExport is one entry of the acknowledged data merged back into the source dataset.
type AcknowledgedExport struct {
	ProductID      string    `json:"productId"`
	Acknowledged   bool      `json:"acknowledged"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
}
