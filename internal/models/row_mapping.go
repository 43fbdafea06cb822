package models

import (
	"github.com/spf13/cast"
	"strconv"
	"time"
)

// pick returns the value under the snake_case key when present, else the camelCase one.
func pick(raw map[string]any, snake, camel string) any {
	if v, ok := raw[snake]; ok && v != nil {
		return v
	}
	if v, ok := raw[camel]; ok && v != nil {
		return v
	}
	return nil
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(time.DateOnly)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(time.DateOnly)
	}
	return cast.ToString(v)
}

// RowFromRaw maps one dataset record to an AlertRow. index is the record's
// position and backs the id when the source provides none.
func RowFromRaw(raw map[string]any, index int) AlertRow {
	id := toText(raw["id"])
	if id == "" {
		id = strconv.Itoa(index + 1)
	}
	return AlertRow{
		ID:           id,
		ProductID:    toText(pick(raw, "product_id", "productId")),
		ProductName:  toText(pick(raw, "product_name", "productName")),
		Category:     toText(raw["category"]),
		CurrentStock: NewQuantity(pick(raw, "current_stock", "currentStock")),
		MinThreshold: NewQuantity(pick(raw, "min_threshold", "minThreshold")),
		LastRestock:  toText(pick(raw, "last_restock", "lastRestock")),
		Priority:     Priority(toText(raw["priority"])),
		Status:       StockStatus(toText(raw["status"])),
		AlertDate:    toText(pick(raw, "alert_date", "alertDate")),
		Supplier:     toText(raw["supplier"]),
		Acknowledged: cast.ToBool(raw["acknowledged"]),
	}
}

// RowsFromRaw maps a whole result set. Rows repeating an already seen
// productId are dropped and their ids returned as duplicates.
func RowsFromRaw(raws []map[string]any) ([]AlertRow, []string) {
	rows := make([]AlertRow, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	var duplicates []string
	for i, raw := range raws {
		row := RowFromRaw(raw, i)
		if _, ok := seen[row.ProductID]; ok {
			duplicates = append(duplicates, row.ProductID)
			continue
		}
		seen[row.ProductID] = struct{}{}
		rows = append(rows, row)
	}
	return rows, duplicates
}
