package models

import "strings"

// Operators accepted in page-level filter notifications.
const (
	OperatorEquals      = "EQUALS"
	OperatorIn          = "IN"
	OperatorContains    = "CONTAINS"
	OperatorBetween     = "BETWEEN"
	OperatorGreaterThan = "GREATER_THAN"
	OperatorLessThan    = "LESS_THAN"
)

// Condition is a filter descriptor delivered by the hosting page.
type Condition struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Values   []any  `json:"values"`
	DataType string `json:"dataType"`
}

// QueryFilter is one condition of a dataset row query.
// Range filters use BETWEEN with Min and/or Max; a missing bound is open-ended.
// Bounds are inclusive unless marked exclusive.
type QueryFilter struct {
	Column       string `json:"column"`
	Operator     string `json:"operator"`
	Values       []any  `json:"values,omitempty"`
	Min          any    `json:"min,omitempty"`
	Max          any    `json:"max,omitempty"`
	MinExclusive bool   `json:"minExclusive,omitempty"`
	MaxExclusive bool   `json:"maxExclusive,omitempty"`
}

type RowQuery struct {
	Fields  []string      `json:"fields"`
	Filters []QueryFilter `json:"filters,omitempty"`
	Limit   int           `json:"limit"`
}

// FieldMapping pairs a view field with its dataset column.
type FieldMapping struct {
	Alias  string
	Column string
}

var AlertFields = []FieldMapping{
	{Alias: "id", Column: "id"},
	{Alias: "productId", Column: "product_id"},
	{Alias: "productName", Column: "product_name"},
	{Alias: "category", Column: "category"},
	{Alias: "currentStock", Column: "current_stock"},
	{Alias: "minThreshold", Column: "min_threshold"},
	{Alias: "lastRestock", Column: "last_restock"},
	{Alias: "priority", Column: "priority"},
	{Alias: "status", Column: "status"},
	{Alias: "alertDate", Column: "alert_date"},
	{Alias: "supplier", Column: "supplier"},
}

// QueryColumns lists the dataset columns requested by every row query.
func QueryColumns() []string {
	cols := make([]string, 0, len(AlertFields))
	for _, f := range AlertFields {
		cols = append(cols, f.Column)
	}
	return cols
}

// ColumnFor resolves a view alias or a dataset column name to the dataset column.
func ColumnFor(name string) (string, bool) {
	for _, f := range AlertFields {
		if f.Alias == name || f.Column == name || strings.EqualFold(f.Alias, name) {
			return f.Column, true
		}
	}
	return "", false
}
