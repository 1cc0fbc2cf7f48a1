// Package daemon provides the long-running background dashboard service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
	"github.com/theirongolddev/pulse/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Location     *time.Location
	Goals        model.Goals
	Today        string // pins the reference date when set
	UseCache     bool
	Interval     time.Duration
	Addr         string
	EventsBuffer int

	// Clock is the wall clock; tests replace it.
	Clock func() time.Time
}

// Snapshot is the compact dashboard state carried by status and events.
type Snapshot struct {
	At               time.Time       `json:"at"`
	Today            string          `json:"today"`
	Records          int             `json:"records"`
	TasksCompleted   int             `json:"tasks_completed"`
	TasksOpen        int             `json:"tasks_open"`
	HabitsDoneToday  int             `json:"habits_done_today"`
	HabitsStreak     int             `json:"habits_streak"`
	Workouts         int             `json:"workouts"`
	CaloriesToday    float64         `json:"calories_today"`
	MonthExpenses    decimal.Decimal `json:"month_expenses"`
	BudgetPercent    int             `json:"budget_percent"`
	WellnessCheckins int             `json:"wellness_checkins"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Records          int             `json:"records"`
	TasksCompleted   int             `json:"tasks_completed"`
	HabitsDoneToday  int             `json:"habits_done_today"`
	Workouts         int             `json:"workouts"`
	CaloriesToday    float64         `json:"calories_today"`
	MonthExpenses    decimal.Decimal `json:"month_expenses"`
	WellnessCheckins int             `json:"wellness_checkins"`
	DayChanged       bool            `json:"day_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Records == 0 &&
		d.TasksCompleted == 0 &&
		d.HabitsDoneToday == 0 &&
		d.Workouts == 0 &&
		d.CaloriesToday == 0 &&
		d.MonthExpenses.IsZero() &&
		d.WellnessCheckins == 0 &&
		!d.DayChanged
}

// Event is emitted whenever the dashboard changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Event types.
const (
	EventSnapshot   = "snapshot"
	EventStatsDelta = "stats_delta"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	Timezone        string    `json:"timezone"`
	Summary         Snapshot  `json:"summary"`
	ParseErrors     int       `json:"parse_errors"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	parseErrors int
	hasSnapshot bool
	snapshot    Snapshot
	dashboard   model.Dashboard
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Service{
		cfg:       cfg,
		log:       logging.For(logging.ComponentDaemon),
		startedAt: cfg.Clock(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/dashboard", s.handleDashboard)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval.String())

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// today resolves the reference date for one poll.
func (s *Service) today(at time.Time) (calendar.Date, error) {
	if s.cfg.Today != "" {
		return calendar.Parse(s.cfg.Today)
	}
	return calendar.FromTime(at.In(s.cfg.Location)), nil
}

func (s *Service) pollOnce() {
	start := s.cfg.Clock()
	records, parseErrors, err := s.loadRecords()
	if err == nil {
		var now calendar.Date
		now, err = s.today(start)
		if err == nil {
			s.apply(records, parseErrors, now, start)
		}
	}
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = start
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("poll failed", logging.Err(err))
		return
	}
	s.log.Debug("poll complete",
		"records", len(records),
		logging.FieldDuration, time.Since(start).Milliseconds())
}

// apply composes the dashboard for now and publishes an event when it
// differs from the previous one.
func (s *Service) apply(records []model.Record, parseErrors int, now calendar.Date, at time.Time) {
	dash := pipeline.ComposeDashboard(records, s.cfg.Goals, now)
	dash.GeneratedAt = at
	snap := snapshotFromDashboard(dash, len(records), at)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.dashboard = dash
	s.lastPollAt = at
	s.pollCount++
	s.lastError = ""
	s.parseErrors = parseErrors

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: at,
			Snapshot:  snap,
		}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventStatsDelta,
			Timestamp: at,
			Snapshot:  snap,
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) loadRecords() ([]model.Record, int, error) {
	if s.cfg.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			cr, loadErr := pipeline.LoadWithCache(s.cfg.DataDir, s.cfg.Location, cache, nil)
			if loadErr == nil {
				return cr.Records, cr.ParseErrors, nil
			}
			err = loadErr
		}
		s.log.Warn("cache unavailable, parsing without it", logging.Err(err))
	}

	result, err := pipeline.Load(s.cfg.DataDir, s.cfg.Location, nil)
	if err != nil {
		return nil, 0, err
	}
	return result.Records, result.ParseErrors, nil
}

func snapshotFromDashboard(d model.Dashboard, records int, at time.Time) Snapshot {
	return Snapshot{
		At:               at,
		Today:            d.Today,
		Records:          records,
		TasksCompleted:   d.Tasks.Completed,
		TasksOpen:        d.Tasks.Open,
		HabitsDoneToday:  d.Habits.CompletedToday,
		HabitsStreak:     d.Habits.HabitsStreak,
		Workouts:         d.Fitness.Workouts,
		CaloriesToday:    d.Meals.TodayCalories,
		MonthExpenses:    d.Finance.MonthExpenses,
		BudgetPercent:    d.Finance.Budget.Percent,
		WellnessCheckins: d.Wellness.Entries,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Records:          curr.Records - prev.Records,
		TasksCompleted:   curr.TasksCompleted - prev.TasksCompleted,
		HabitsDoneToday:  curr.HabitsDoneToday - prev.HabitsDoneToday,
		Workouts:         curr.Workouts - prev.Workouts,
		CaloriesToday:    curr.CaloriesToday - prev.CaloriesToday,
		MonthExpenses:    curr.MonthExpenses.Sub(prev.MonthExpenses),
		WellnessCheckins: curr.WellnessCheckins - prev.WellnessCheckins,
		DayChanged:       curr.Today != prev.Today,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		Timezone:        s.cfg.Location.String(),
		Summary:         s.snapshot,
		ParseErrors:     s.parseErrors,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready := s.hasSnapshot
	dash := s.dashboard
	s.mu.RUnlock()

	if !ready {
		http.Error(w, "dashboard not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dash)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Clock(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
