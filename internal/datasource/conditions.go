package datasource

import (
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/spf13/cast"
	"strings"
)

// TranslateConditions turns page-level conditions into row query filters.
// Conditions naming an unknown column or operator, or carrying too few
// values, are skipped and described in the second result.
func TranslateConditions(conditions []models.Condition) ([]models.QueryFilter, []string) {
	var filters []models.QueryFilter
	var skipped []string

	for _, c := range conditions {
		column, ok := models.ColumnFor(c.Column)
		if !ok {
			skipped = append(skipped, fmt.Sprintf("unknown column %q", c.Column))
			continue
		}

		op := strings.ToUpper(strings.TrimSpace(c.Operator))
		f := models.QueryFilter{Column: column}

		switch op {
		case models.OperatorIn:
			f.Operator = models.OperatorIn
			f.Values = c.Values
		case models.OperatorEquals:
			if len(c.Values) == 0 {
				skipped = append(skipped, fmt.Sprintf("%s on %q without a value", op, c.Column))
				continue
			}
			f.Operator = models.OperatorEquals
			f.Values = c.Values[:1]
		case models.OperatorContains:
			if len(c.Values) == 0 {
				skipped = append(skipped, fmt.Sprintf("%s on %q without a value", op, c.Column))
				continue
			}
			f.Operator = models.OperatorContains
			f.Values = []any{"%" + cast.ToString(c.Values[0]) + "%"}
		case models.OperatorBetween:
			if len(c.Values) < 2 {
				skipped = append(skipped, fmt.Sprintf("%s on %q needs two values", op, c.Column))
				continue
			}
			f.Operator = models.OperatorBetween
			f.Min, f.Max = c.Values[0], c.Values[1]
		case models.OperatorGreaterThan:
			if len(c.Values) == 0 {
				skipped = append(skipped, fmt.Sprintf("%s on %q without a value", op, c.Column))
				continue
			}
			f.Operator = models.OperatorBetween
			f.Min = c.Values[0]
			f.MinExclusive = true
		case models.OperatorLessThan:
			if len(c.Values) == 0 {
				skipped = append(skipped, fmt.Sprintf("%s on %q without a value", op, c.Column))
				continue
			}
			f.Operator = models.OperatorBetween
			f.Max = c.Values[0]
			f.MaxExclusive = true
		default:
			skipped = append(skipped, fmt.Sprintf("unsupported operator %q on %q", c.Operator, c.Column))
			continue
		}
		filters = append(filters, f)
	}
	return filters, skipped
}

// columnValue reads a dataset column from a row as text, plus its numeric form when it has one.
func columnValue(row models.AlertRow, column string) (string, float64, bool) {
	var text string
	switch column {
	case "id":
		text = row.ID
	case "product_id":
		text = row.ProductID
	case "product_name":
		text = row.ProductName
	case "category":
		text = row.Category
	case "current_stock":
		text = row.CurrentStock.String()
	case "min_threshold":
		text = row.MinThreshold.String()
	case "last_restock":
		text = row.LastRestock
	case "priority":
		text = string(row.Priority)
	case "status":
		text = string(row.Status)
	case "alert_date":
		text = row.AlertDate
	case "supplier":
		text = row.Supplier
	}
	n, err := cast.ToFloat64E(text)
	return text, n, err == nil && text != ""
}

// compareBound orders a row value against a range bound, numerically when both sides are numbers.
func compareBound(text string, num float64, numeric bool, bound any) int {
	if numeric {
		if b, err := cast.ToFloat64E(bound); err == nil {
			switch {
			case num < b:
				return -1
			case num > b:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(text, cast.ToString(bound))
}

// MatchRow applies query filters in memory. Range bounds are inclusive unless marked exclusive.
func MatchRow(row models.AlertRow, filters []models.QueryFilter) bool {
	for _, f := range filters {
		text, num, numeric := columnValue(row, f.Column)
		switch f.Operator {
		case models.OperatorEquals, models.OperatorIn:
			matched := false
			for _, v := range f.Values {
				if strings.EqualFold(text, cast.ToString(v)) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		case models.OperatorContains:
			if len(f.Values) == 0 {
				continue
			}
			needle := strings.Trim(cast.ToString(f.Values[0]), "%")
			if !strings.Contains(strings.ToLower(text), strings.ToLower(needle)) {
				return false
			}
		case models.OperatorBetween:
			if f.Min != nil {
				c := compareBound(text, num, numeric, f.Min)
				if c < 0 || (f.MinExclusive && c == 0) {
					return false
				}
			}
			if f.Max != nil {
				c := compareBound(text, num, numeric, f.Max)
				if c > 0 || (f.MaxExclusive && c == 0) {
					return false
				}
			}
		}
	}
	return true
}
