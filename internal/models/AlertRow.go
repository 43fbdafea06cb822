package models

import (
	"sort"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Rank orders priorities by severity, high first. Unknown values rank last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[Priority(strings.ToLower(string(p)))]; ok {
		return r
	}
	return len(priorityRank)
}

func (p Priority) Label() string {
	return strings.ToUpper(string(p))
}

type StockStatus string

const (
	StatusOutOfStock StockStatus = "out-of-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusInStock    StockStatus = "in-stock"
	StatusUnknown    StockStatus = "unknown"
)

type AlertRow struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	Category     string      `json:"category"`
	CurrentStock Quantity    `json:"currentStock"`
	MinThreshold Quantity    `json:"minThreshold"`
	LastRestock  string      `json:"lastRestock"`
	Priority     Priority    `json:"priority"`
	Status       StockStatus `json:"status"`
	AlertDate    string      `json:"alertDate"`
	Supplier     string      `json:"supplier"`
	Acknowledged bool        `json:"acknowledged"`
}

// DerivedStatus computes the status from the stock figures, ignoring the stored Status.
func (r AlertRow) DerivedStatus() StockStatus {
	stock, ok := r.CurrentStock.Float()
	if !ok {
		return StatusUnknown
	}
	if stock <= 0 {
		return StatusOutOfStock
	}
	if threshold, ok := r.MinThreshold.Float(); ok && stock <= threshold {
		return StatusLowStock
	}
	return StatusInStock
}

// StockLabel renders the current stock the way the alerts table shows it.
// The figure itself is always shown as delivered.
func (r AlertRow) StockLabel() string {
	stock, ok := r.CurrentStock.Float()
	if !ok {
		return r.CurrentStock.String()
	}
	if stock == 0 {
		return "Out of Stock"
	}
	if threshold, ok := r.MinThreshold.Float(); ok && stock <= threshold {
		return r.CurrentStock.String() + " (Low)"
	}
	return r.CurrentStock.String()
}

// SortRows orders rows by alert date descending, then by priority severity.
// ISO dates compare correctly as strings.
func SortRows(rows []AlertRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AlertDate != rows[j].AlertDate {
			return rows[i].AlertDate > rows[j].AlertDate
		}
		return rows[i].Priority.Rank() < rows[j].Priority.Rank()
	})
}

func CloneRows(rows []AlertRow) []AlertRow {
	if rows == nil {
		return nil
	}
	out := make([]AlertRow, len(rows))
	copy(out, rows)
	return out
}
