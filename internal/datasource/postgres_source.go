package datasource

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/spf13/cast"
	"strings"
)

const DefaultTable = "product_alerts"

// PostgresSource reads alert rows straight from a table.
type PostgresSource struct {
	db       providers.Database
	table    string
	limit    int
	fallback *LocalSource
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewPostgresSource(
	db providers.Database,
	table string,
	limit int,
	fallback *LocalSource,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &PostgresSource{
		db:       db,
		table:    table,
		limit:    limit,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
}

// BuildRowQuery renders the select for the fixed column list. Columns come
// from the field whitelist and the table is quoted, only values are bound.
func BuildRowQuery(table string, filters []models.QueryFilter, limit int) (string, []any) {
	cols := models.QueryColumns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}

	var where []string
	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, f := range filters {
		col := pgx.Identifier{f.Column}.Sanitize()
		switch f.Operator {
		case models.OperatorEquals:
			if len(f.Values) > 0 {
				where = append(where, fmt.Sprintf("%s::text = %s", col, bind(cast.ToString(f.Values[0]))))
			}
		case models.OperatorIn:
			values := make([]string, len(f.Values))
			for i, v := range f.Values {
				values[i] = cast.ToString(v)
			}
			where = append(where, fmt.Sprintf("%s::text = ANY(%s)", col, bind(values)))
		case models.OperatorContains:
			if len(f.Values) > 0 {
				where = append(where, fmt.Sprintf("%s::text ILIKE %s", col, bind(cast.ToString(f.Values[0]))))
			}
		case models.OperatorBetween:
			if f.Min != nil {
				op := ">="
				if f.MinExclusive {
					op = ">"
				}
				where = append(where, fmt.Sprintf("%s %s %s", col, op, bind(f.Min)))
			}
			if f.Max != nil {
				op := "<="
				if f.MaxExclusive {
					op = "<"
				}
				where = append(where, fmt.Sprintf("%s %s %s", col, op, bind(f.Max)))
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(quoted, ", "), pgx.Identifier{table}.Sanitize())
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(` ORDER BY "alert_date" DESC, CASE lower("priority") WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END`)
	fmt.Fprintf(&sb, " LIMIT %s", bind(limit))
	return sb.String(), args
}

func (p *PostgresSource) query(ctx context.Context, filters []models.QueryFilter) ([]models.AlertRow, error) {
	sql, args := BuildRowQuery(p.table, filters, p.limit)
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raws []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		raw := make(map[string]any, len(values))
		for i, fd := range rows.FieldDescriptions() {
			raw[fd.Name] = values[i]
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result, duplicates := models.RowsFromRaw(raws)
	for _, id := range duplicates {
		p.logger.Warnf(providers.TypeApp, "Duplicate productId %s dropped from table", id)
	}
	return result, nil
}

func (p *PostgresSource) LoadRows(ctx context.Context) ([]models.AlertRow, error) {
	rows, err := p.query(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Errorf(providers.TypeApp, "Error loading rows from postgres, falling back to local data: %s", err)
		p.metrics.IncSourceFallbacks("postgres")
		return p.fallback.LoadRows(ctx)
	}
	return rows, nil
}

func (p *PostgresSource) RefreshRows(ctx context.Context, conditions []models.Condition) ([]models.AlertRow, error) {
	filters, skipped := TranslateConditions(conditions)
	for _, s := range skipped {
		p.logger.Warnf(providers.TypeApp, "Ignoring filter condition: %s", s)
	}

	rows, err := p.query(ctx, filters)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Errorf(providers.TypeApp, "Error refreshing rows from postgres, falling back to local data: %s", err)
		p.metrics.IncSourceFallbacks("postgres")
		return p.fallback.RefreshRows(ctx, conditions)
	}
	return rows, nil
}
