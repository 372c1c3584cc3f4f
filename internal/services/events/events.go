// Package events implements event querying, participation (registration and
// bookmarks), creator-only management and admin statistics.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/lib/metrics"
	"campusEvents/internal/models"
	"campusEvents/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrForbidden            = errors.New("only the event creator can modify this event")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrAlreadyBookmarked    = errors.New("event already bookmarked")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidStatus        = errors.New("status must be upcoming or past")
	ErrValidation           = errors.New("invalid event")
)

const (
	StatusUpcoming = "upcoming"
	StatusPast     = "past"

	CategoryAll = "all"
)

// Query is the event list filter as sent by clients.
type Query struct {
	Category string
	Status   string
	Search   string
}

type NewEvent struct {
	Title              string
	Description        string
	Date               time.Time
	Time               string
	Venue              string
	Category           string
	Mode               string
	FeeType            string
	Fee                decimal.Decimal
	RegistrationStatus string
	Visibility         string
}

type UserEvents struct {
	Registered []models.Event `json:"registered"`
	Bookmarked []models.Event `json:"bookmarked"`
}

type AdminStats struct {
	TotalEvents        int            `json:"totalEvents"`
	TotalRegistrations int            `json:"totalRegistrations"`
	Events             []models.Event `json:"events"`
}

type Storage interface {
	SaveEvent(ctx context.Context, event models.Event) error
	Event(ctx context.Context, id, viewerID string) (*models.Event, error)
	Events(ctx context.Context, filter storage.EventFilter) ([]models.Event, error)
	EventsByMember(ctx context.Context, userID, kind string) ([]models.Event, error)
	EventsByCreator(ctx context.Context, creatorID string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id, requesterID string, upd storage.EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id, requesterID string) error
	AddMembership(ctx context.Context, eventID, userID, kind, status string) error
	Registrations(ctx context.Context, eventID string) ([]models.Registration, error)
	SetRegistrationStatus(ctx context.Context, eventID, userID, requesterID, status string) error
	CompleteRegistrationsBefore(ctx context.Context, t time.Time) (int64, error)
	CreatorOf(ctx context.Context, eventID string) (string, error)
}

type Service struct {
	log     *slog.Logger
	storage Storage
	now     func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "now" for time-window filters.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(log *slog.Logger, storage Storage, opts ...Option) *Service {
	s := &Service{
		log:     log,
		storage: storage,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns the events matching q that viewerID may see, ordered by date.
func (s *Service) List(ctx context.Context, q Query, viewerID string) ([]models.Event, error) {
	const op = "services.events.List"

	filter := storage.EventFilter{
		Search:   strings.TrimSpace(q.Search),
		ViewerID: viewerID,
	}

	if q.Category != "" && q.Category != CategoryAll {
		filter.Category = q.Category
	}

	switch q.Status {
	case "":
	case StatusUpcoming:
		filter.From = s.now()
	case StatusPast:
		filter.Before = s.now()
	default:
		return nil, ErrInvalidStatus
	}

	events, err := s.storage.Events(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Service) Get(ctx context.Context, id, viewerID string) (*models.Event, error) {
	const op = "services.events.Get"

	if !validID(id) {
		return nil, ErrEventNotFound
	}

	event, err := s.storage.Event(ctx, id, viewerID)
	if err != nil {
		return nil, mapStorageErr(op, err)
	}

	return event, nil
}

func (s *Service) Create(ctx context.Context, creatorID string, in NewEvent) (*models.Event, error) {
	const op = "services.events.Create"

	now := s.now().UTC()

	event := models.Event{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Date:               in.Date.UTC(),
		Time:               in.Time,
		Venue:              in.Venue,
		Category:           in.Category,
		Mode:               orDefault(in.Mode, models.ModeOffline),
		FeeType:            orDefault(in.FeeType, models.FeeTypeFree),
		Fee:                in.Fee,
		RegistrationStatus: orDefault(in.RegistrationStatus, models.RegistrationOpen),
		Visibility:         orDefault(in.Visibility, models.VisibilityPublic),
		CreatedBy:          creatorID,
		CreatedAt:          now,
		RegisteredUsers:    []string{},
		BookmarkedBy:       []string{},
	}

	if event.FeeType == models.FeeTypeFree {
		event.Fee = decimal.Zero
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.storage.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

// Update applies the non-nil fields of upd. Only the creator may update.
func (s *Service) Update(ctx context.Context, id, requesterID string, upd storage.EventUpdate) (*models.Event, error) {
	const op = "services.events.Update"

	if !validID(id) {
		return nil, ErrEventNotFound
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		upd.Title = &title
	}

	if upd.FeeType != nil && *upd.FeeType == models.FeeTypeFree {
		zero := decimal.Zero
		upd.Fee = &zero
	}

	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	upd.UpdatedAt = s.now().UTC()

	event, err := s.storage.UpdateEvent(ctx, id, requesterID, upd)
	if err != nil {
		return nil, mapStorageErr(op, err)
	}

	return event, nil
}

// Delete removes the event together with its registrations and bookmarks.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	const op = "services.events.Delete"

	if !validID(id) {
		return ErrEventNotFound
	}

	if err := s.storage.DeleteEvent(ctx, id, requesterID); err != nil {
		return mapStorageErr(op, err)
	}

	return nil
}

// Register adds userID to the event's registrations; a second call fails with
// ErrAlreadyRegistered and leaves the set unchanged.
func (s *Service) Register(ctx context.Context, eventID, userID string) error {
	return s.join(ctx, eventID, userID, models.KindRegistration, models.RegistrationRegistered, ErrAlreadyRegistered)
}

// Bookmark adds userID to the event's bookmarks; duplicates fail with ErrAlreadyBookmarked.
func (s *Service) Bookmark(ctx context.Context, eventID, userID string) error {
	return s.join(ctx, eventID, userID, models.KindBookmark, "", ErrAlreadyBookmarked)
}

func (s *Service) join(ctx context.Context, eventID, userID, kind, status string, errDuplicate error) error {
	const op = "services.events.join"

	if !validID(eventID) {
		metrics.Participation.WithLabelValues(kind, metrics.ResultNotFound).Inc()
		return ErrEventNotFound
	}

	err := s.storage.AddMembership(ctx, eventID, userID, kind, status)
	switch {
	case err == nil:
		metrics.Participation.WithLabelValues(kind, metrics.ResultOK).Inc()
		return nil
	case errors.Is(err, storage.ErrMembershipExists):
		metrics.Participation.WithLabelValues(kind, metrics.ResultDuplicate).Inc()
		return errDuplicate
	case errors.Is(err, storage.ErrEventNotFound):
		metrics.Participation.WithLabelValues(kind, metrics.ResultNotFound).Inc()
		return ErrEventNotFound
	default:
		metrics.Participation.WithLabelValues(kind, metrics.ResultError).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
}

// ListForUser returns the events userID registered for and bookmarked.
func (s *Service) ListForUser(ctx context.Context, userID string) (*UserEvents, error) {
	const op = "services.events.ListForUser"

	registered, err := s.storage.EventsByMember(ctx, userID, models.KindRegistration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookmarked, err := s.storage.EventsByMember(ctx, userID, models.KindBookmark)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &UserEvents{
		Registered: registered,
		Bookmarked: bookmarked,
	}, nil
}

// AdminStats aggregates the events created by adminID. Nothing is cached.
func (s *Service) AdminStats(ctx context.Context, adminID string) (*AdminStats, error) {
	const op = "services.events.AdminStats"

	events, err := s.storage.EventsByCreator(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &AdminStats{
		TotalEvents: len(events),
		Events:      events,
	}

	for _, e := range events {
		stats.TotalRegistrations += len(e.RegisteredUsers)
	}

	return stats, nil
}

// Registrations returns the registration records of an event to its creator.
func (s *Service) Registrations(ctx context.Context, eventID, requesterID string) ([]models.Registration, error) {
	const op = "services.events.Registrations"

	if !validID(eventID) {
		return nil, ErrEventNotFound
	}

	creator, err := s.storage.CreatorOf(ctx, eventID)
	if err != nil {
		return nil, mapStorageErr(op, err)
	}

	if creator != requesterID {
		return nil, ErrForbidden
	}

	registrations, err := s.storage.Registrations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if registrations == nil {
		registrations = []models.Registration{}
	}

	return registrations, nil
}

func (s *Service) SetRegistrationStatus(ctx context.Context, eventID, userID, requesterID, status string) error {
	const op = "services.events.SetRegistrationStatus"

	if !models.IsRegistrationStatus(status) {
		return fmt.Errorf("%w: unknown registration status %q", ErrValidation, status)
	}

	if !validID(eventID) {
		return ErrEventNotFound
	}

	if err := s.storage.SetRegistrationStatus(ctx, eventID, userID, requesterID, status); err != nil {
		return mapStorageErr(op, err)
	}

	return nil
}

// CompletePastRegistrations marks Registered rows of already-held events as Completed.
func (s *Service) CompletePastRegistrations(ctx context.Context) (int64, error) {
	const op = "services.events.CompletePastRegistrations"

	n, err := s.storage.CompleteRegistrationsBefore(ctx, s.now())
	if err != nil {
		s.log.Error("failed to complete past registrations", slog.String("op", op), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if n > 0 {
		metrics.RegistrationsCompleted.Add(float64(n))
		s.log.Info("registrations completed", slog.String("op", op), slog.Int64("count", n))
	}

	return n, nil
}

func mapStorageErr(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, storage.ErrNotCreator):
		return ErrForbidden
	case errors.Is(err, storage.ErrRegistrationNotFound):
		return ErrRegistrationNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func validateEvent(e models.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	return validateEnums(e.Mode, e.FeeType, e.RegistrationStatus, e.Visibility, e.Fee)
}

func validateUpdate(upd storage.EventUpdate) error {
	if upd.Date != nil && upd.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	fee := decimal.Zero
	if upd.Fee != nil {
		fee = *upd.Fee
	}

	return validateEnums(
		deref(upd.Mode, models.ModeOffline),
		deref(upd.FeeType, models.FeeTypeFree),
		deref(upd.RegistrationStatus, models.RegistrationOpen),
		deref(upd.Visibility, models.VisibilityPublic),
		fee,
	)
}

func validateEnums(mode, feeType, registrationStatus, visibility string, fee decimal.Decimal) error {
	if mode != models.ModeOnline && mode != models.ModeOffline {
		return fmt.Errorf("%w: mode must be online or offline", ErrValidation)
	}

	if feeType != models.FeeTypeFree && feeType != models.FeeTypePaid {
		return fmt.Errorf("%w: feeType must be free or paid", ErrValidation)
	}

	if registrationStatus != models.RegistrationOpen && registrationStatus != models.RegistrationClosed {
		return fmt.Errorf("%w: registrationStatus must be open or closed", ErrValidation)
	}

	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return fmt.Errorf("%w: visibility must be public or private", ErrValidation)
	}

	if fee.IsNegative() {
		return fmt.Errorf("%w: fee must not be negative", ErrValidation)
	}

	return nil
}

func deref(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
