package datasource

import (
	"context"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
)

// LocalSource serves the built-in alert set. It is also the fallback of the remote backends.
type LocalSource struct {
	logger providers.Logger
}

func NewLocalSource(logger providers.Logger) *LocalSource {
	return &LocalSource{logger: logger}
}

func (l *LocalSource) LoadRows(_ context.Context) ([]models.AlertRow, error) {
	return models.FallbackRows(), nil
}

func (l *LocalSource) RefreshRows(_ context.Context, conditions []models.Condition) ([]models.AlertRow, error) {
	filters, skipped := TranslateConditions(conditions)
	for _, s := range skipped {
		l.logger.Warnf(providers.TypeApp, "Ignoring filter condition: %s", s)
	}

	rows := models.FallbackRows()
	if len(filters) == 0 {
		return rows, nil
	}
	out := make([]models.AlertRow, 0, len(rows))
	for _, r := range rows {
		if MatchRow(r, filters) {
			out = append(out, r)
		}
	}
	return out, nil
}
