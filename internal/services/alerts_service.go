package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/acknowledgment"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/datasource"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"sync"
	"time"
)

type ControllerState string

const (
	StateUninitialized ControllerState = "uninitialized"
	StateLoading       ControllerState = "loading"
	StateReady         ControllerState = "ready"
)

const (
	DefaultRemovalDelay = time.Second
	DefaultNoticeTTL    = 3 * time.Second
)

var (
	ErrNotReady       = errors.New("alerts are not loaded yet")
	ErrUnknownProduct = errors.New("unknown product")
)

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the transient message shown after an acknowledgment change.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type Counts struct {
	Total        int `json:"total"`
	Acknowledged int `json:"acknowledged"`
	Pending      int `json:"pending"`
}

// AlertView is a row as the table renders it.
type AlertView struct {
	models.AlertRow
	StockDisplay    string             `json:"stockLabel"`
	PriorityDisplay string             `json:"priorityLabel"`
	DerivedStatus   models.StockStatus `json:"derivedStatus"`
}

type View struct {
	State   ControllerState    `json:"state"`
	Filter  models.FilterState `json:"filter"`
	Rows    []AlertView        `json:"rows"`
	Counts  Counts             `json:"counts"`
	Version uint64             `json:"version"`
}

type AlertsServiceInterface interface {
	Start(ctx context.Context)
	State() ControllerState
	ToggleAcknowledgment(ctx context.Context, productID string, checked bool, user string) error
	SetFilter(state models.FilterState)
	Filter() models.FilterState
	OnExternalFilterChange(ctx context.Context, conditions []models.Condition) error
	Refresh(ctx context.Context) error
	View() View
	Version() uint64
	Counts() Counts
	Notice() *Notice
	AcknowledgedExport() []models.AcknowledgedExport
}

type AlertsService struct {
	source  datasource.Source
	store   acknowledgment.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	removalDelay time.Duration
	noticeTTL    time.Duration
	defaultUser  string
	now          func() time.Time
	afterFunc    func(d time.Duration, f func())

	mu         sync.Mutex
	state      ControllerState
	rows       []models.AlertRow
	acked      models.AcknowledgedSet
	ackTimes   map[string]time.Time
	loadedAt   time.Time
	filter     models.FilterState
	conditions []models.Condition
	visible    []models.AlertRow
	lingering  map[string]uint64
	lingerSeq  uint64
	version    uint64
	notice     *Notice
}

func NewAlertsService(
	conf *structures.Config,
	source datasource.Source,
	store acknowledgment.Store,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) AlertsServiceInterface {
	return newAlertsService(conf, source, store, logger, metrics)
}

func newAlertsService(
	conf *structures.Config,
	source datasource.Source,
	store acknowledgment.Store,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *AlertsService {
	removalDelay := conf.View.RemovalDelay
	if removalDelay <= 0 {
		removalDelay = DefaultRemovalDelay
	}
	noticeTTL := conf.View.NoticeTTL
	if noticeTTL <= 0 {
		noticeTTL = DefaultNoticeTTL
	}
	return &AlertsService{
		source:       source,
		store:        store,
		logger:       logger,
		metrics:      metrics,
		removalDelay: removalDelay,
		noticeTTL:    noticeTTL,
		defaultUser:  conf.Acknowledgments.User,
		now:          time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		state:     StateUninitialized,
		acked:     models.NewAcknowledgedSet(),
		ackTimes:  make(map[string]time.Time),
		filter:    models.DefaultFilter,
		lingering: make(map[string]uint64),
	}
}

// Start loads rows and acknowledgments side by side. Failures degrade to
// empty results, the controller always ends up Ready.
func (s *AlertsService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.version++
	s.mu.Unlock()

	var (
		wg    sync.WaitGroup
		rows  []models.AlertRow
		acked models.AcknowledgedSet
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		rows, err = s.source.LoadRows(ctx)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error loading alert rows: %s", err)
			rows = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		acked, err = s.store.LoadAcknowledged(ctx)
		if err != nil {
			s.logger.Errorf(providers.TypeStore, "Error loading acknowledgments: %s", err)
			acked = nil
		}
	}()
	wg.Wait()

	if acked == nil {
		acked = models.NewAcknowledgedSet()
	}

	s.mu.Lock()
	s.rows = rows
	s.acked = acked
	s.ackTimes = make(map[string]time.Time)
	s.loadedAt = s.now().UTC()
	s.lingering = make(map[string]uint64)
	s.state = StateReady
	s.deriveLocked()
	s.mu.Unlock()

	s.logger.Infof(providers.TypeApp, "Loaded %d alerts, %d acknowledged", len(rows), len(acked))
}

func (s *AlertsService) State() ControllerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AlertsService) findRowLocked(productID string) (models.AlertRow, bool) {
	for _, r := range s.rows {
		if r.ProductID == productID {
			return r, true
		}
	}
	return models.AlertRow{}, false
}

// ToggleAcknowledgment applies the change right away and persists it afterwards.
// When the store rejects the write the change is rolled back and an error notice raised.
func (s *AlertsService) ToggleAcknowledgment(ctx context.Context, productID string, checked bool, user string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	row, ok := s.findRowLocked(productID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if s.acked.Has(productID) == checked {
		s.mu.Unlock()
		return nil
	}

	now := s.now()
	previousAt, hadTime := s.ackTimes[productID]
	var gen uint64
	if checked {
		s.acked.Add(productID)
		s.ackTimes[productID] = now.UTC()
		if s.filter == models.FilterPending {
			s.lingerSeq++
			gen = s.lingerSeq
			s.lingering[productID] = gen
			s.afterFunc(s.removalDelay, func() { s.settle(productID, gen) })
		}
	} else {
		s.acked.Remove(productID)
		delete(s.ackTimes, productID)
		delete(s.lingering, productID)
	}
	s.deriveLocked()
	s.mu.Unlock()

	if user == "" {
		user = s.defaultUser
	}

	var err error
	if checked {
		err = s.store.Save(ctx, models.NewAcknowledgmentRecord(row, user, now))
	} else {
		err = s.store.Remove(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if checked {
			s.acked.Remove(productID)
			delete(s.ackTimes, productID)
			if s.lingering[productID] == gen {
				delete(s.lingering, productID)
			}
			s.setNoticeLocked(NoticeError, "Failed to acknowledge alert for "+row.ProductName)
		} else {
			s.acked.Add(productID)
			if hadTime {
				s.ackTimes[productID] = previousAt
			}
			s.setNoticeLocked(NoticeError, "Failed to remove acknowledgment for "+row.ProductName)
		}
		s.deriveLocked()
		s.logger.Errorf(providers.TypeStore, "Acknowledgment change for %s rolled back: %s", productID, err)
		return fmt.Errorf("toggle acknowledgment for %s: %w", productID, err)
	}

	if checked {
		s.setNoticeLocked(NoticeSuccess, "Alert acknowledged for "+row.ProductName)
	} else {
		s.setNoticeLocked(NoticeSuccess, "Acknowledgment removed for "+row.ProductName)
	}
	return nil
}

// settle drops a just-acknowledged row from the pending view once its delay passed.
// A timer left over from an earlier toggle of the same row does nothing.
func (s *AlertsService) settle(productID string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.lingering[productID]; !ok || cur != gen {
		return
	}
	delete(s.lingering, productID)
	s.deriveLocked()
}

func (s *AlertsService) SetFilter(state models.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = state
	s.lingering = make(map[string]uint64)
	s.deriveLocked()
}

func (s *AlertsService) Filter() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// OnExternalFilterChange keeps the page-level conditions and reloads rows with them.
func (s *AlertsService) OnExternalFilterChange(ctx context.Context, conditions []models.Condition) error {
	s.mu.Lock()
	s.conditions = append([]models.Condition(nil), conditions...)
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh re-queries the source with the stored conditions. The acknowledged set is kept.
func (s *AlertsService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	conditions := s.conditions
	s.mu.Unlock()

	rows, err := s.source.RefreshRows(ctx, conditions)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error refreshing alert rows: %s", err)
		return fmt.Errorf("refresh rows: %w", err)
	}

	s.mu.Lock()
	s.rows = rows
	s.deriveLocked()
	s.mu.Unlock()
	return nil
}

func (s *AlertsService) deriveLocked() {
	effective := s.acked
	if s.filter == models.FilterPending && len(s.lingering) > 0 {
		effective = s.acked.Clone()
		for id := range s.lingering {
			effective.Remove(id)
		}
	}
	s.visible = FilterRows(s.rows, effective, s.filter)
	s.version++

	counts := s.countsLocked()
	s.metrics.SetViewCounts(counts.Total, counts.Acknowledged, counts.Pending)
}

func (s *AlertsService) countsLocked() Counts {
	acknowledged := 0
	for _, r := range s.rows {
		if s.acked.Has(r.ProductID) {
			acknowledged++
		}
	}
	return Counts{
		Total:        len(s.rows),
		Acknowledged: acknowledged,
		Pending:      len(s.rows) - acknowledged,
	}
}

func (s *AlertsService) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countsLocked()
}

func (s *AlertsService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *AlertsService) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]AlertView, 0, len(s.visible))
	for _, r := range s.visible {
		r.Acknowledged = s.acked.Has(r.ProductID)
		rows = append(rows, AlertView{
			AlertRow:        r,
			StockDisplay:    r.StockLabel(),
			PriorityDisplay: r.Priority.Label(),
			DerivedStatus:   r.DerivedStatus(),
		})
	}
	return View{
		State:   s.state,
		Filter:  s.filter,
		Rows:    rows,
		Counts:  s.countsLocked(),
		Version: s.version,
	}
}

func (s *AlertsService) setNoticeLocked(level NoticeLevel, message string) {
	s.notice = &Notice{
		Level:     level,
		Message:   message,
		ExpiresAt: s.now().Add(s.noticeTTL),
	}
}

// Notice returns the current notice, or nil once it expired.
func (s *AlertsService) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return nil
	}
	if !s.now().Before(s.notice.ExpiresAt) {
		s.notice = nil
		return nil
	}
	n := *s.notice
	return &n
}

// AcknowledgedExport lists the acknowledged rows in the shape merged back into the dataset.
// Rows acknowledged before this session carry the load time.
func (s *AlertsService) AcknowledgedExport() []models.AcknowledgedExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AcknowledgedExport, 0, len(s.acked))
	for _, r := range s.rows {
		if !s.acked.Has(r.ProductID) {
			continue
		}
		at, ok := s.ackTimes[r.ProductID]
		if !ok {
			at = s.loadedAt
		}
		out = append(out, models.AcknowledgedExport{
			ProductID:      r.ProductID,
			Acknowledged:   true,
			AcknowledgedAt: at,
		})
	}
	return out
}
