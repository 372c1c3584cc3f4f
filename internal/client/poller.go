package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
)

const DefaultPollInterval = 30 * time.Second

// Snapshot is a complete filtered event list. Each one replaces the previous.
type Snapshot struct {
	Filter    Filter
	Events    []models.Event
	FetchedAt time.Time
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsFetcher
type EventsFetcher interface {
	Events(ctx context.Context, f Filter) ([]models.Event, error)
}

type Poller struct {
	log        *slog.Logger
	fetcher    EventsFetcher
	interval   time.Duration
	onSnapshot func(Snapshot)

	mu      sync.Mutex
	filter  Filter
	refresh chan struct{}
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPoller creates a poller that delivers snapshots for filter to onSnapshot.
// onSnapshot is called from the Run goroutine.
func NewPoller(log *slog.Logger, fetcher EventsFetcher, filter Filter, onSnapshot func(Snapshot), opts ...PollerOption) *Poller {
	p := &Poller{
		log:        log,
		fetcher:    fetcher,
		interval:   DefaultPollInterval,
		onSnapshot: onSnapshot,
		filter:     filter,
		refresh:    make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetFilter replaces the filter and triggers an immediate refetch, cancelling
// any fetch still in flight.
func (p *Poller) SetFilter(f Filter) {
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()

	p.Refresh()
}

// Refresh requests an immediate refetch with the current filter.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

func (p *Poller) currentFilter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.filter
}

type fetchResult struct {
	gen    uint64
	filter Filter
	events []models.Event
	err    error
}

// Run fetches immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	const op = "client.Poller.Run"

	log := p.log.With(slog.String("op", op))

	results := make(chan fetchResult)

	var (
		gen      uint64
		inFlight bool
		cancel   context.CancelFunc = func() {}
	)

	fetch := func() {
		cancel()

		gen++
		filter := p.currentFilter()

		var fetchCtx context.Context
		fetchCtx, cancel = context.WithCancel(ctx)
		inFlight = true

		go func(gen uint64, ctx context.Context) {
			events, err := p.fetcher.Events(ctx, filter)

			select {
			case results <- fetchResult{gen: gen, filter: filter, events: events, err: err}:
			case <-ctx.Done():
			}
		}(gen, fetchCtx)
	}

	fetch()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cancel()
			return ctx.Err()

		case <-ticker.C:
			// A slow fetch is left to finish rather than restarted every tick.
			if !inFlight {
				fetch()
			}

		case <-p.refresh:
			fetch()
			ticker.Reset(p.interval)

		case res := <-results:
			if res.gen != gen {
				log.Debug("dropping superseded fetch", slog.Uint64("gen", res.gen))
				continue
			}

			inFlight = false

			if res.err != nil {
				if !errors.Is(res.err, context.Canceled) {
					log.Error("failed to fetch events", sl.Err(res.err))
				}
				continue
			}

			if res.events == nil {
				res.events = []models.Event{}
			}

			p.onSnapshot(Snapshot{
				Filter:    res.filter,
				Events:    res.events,
				FetchedAt: time.Now(),
			})
		}
	}
}
