// Package sqlstore holds the SQL shared by the postgres and sqlite drivers.
//
// Queries are written with '?' placeholders and rebound for the dialect in use.
// Memberships live in a single ledger table keyed by (event_id, user_id, kind);
// the registeredUsers/bookmarkedBy arrays on events are projected from it.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"campusEvents/internal/models"
	"campusEvents/internal/storage"
)

type Dialect int

// SQLiteLower names the Unicode-aware lower() the sqlite driver registers;
// the built-in one folds ASCII only.
const SQLiteLower = "unicode_lower"

const (
	Postgres Dialect = iota
	SQLite
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const eventColumns = `e.id, e.title, e.description, e.event_date, e.event_time, e.venue,
	e.category, e.mode, e.fee_type, e.fee, e.registration_status, e.visibility,
	e.created_by, e.created_at`

// visibleTo restricts rows to public events and the viewer's own private ones.
const visibleTo = `(e.visibility = 'public' OR e.created_by = ?)`

func (s *Store) SaveEvent(ctx context.Context, event models.Event) error {
	const op = "storage.sqlstore.SaveEvent"

	query := `
		INSERT INTO events (id, title, description, event_date, event_time, venue, category,
			mode, fee_type, fee, registration_status, visibility, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		event.ID,
		event.Title,
		event.Description,
		event.Date.UTC(),
		event.Time,
		event.Venue,
		event.Category,
		event.Mode,
		event.FeeType,
		event.Fee,
		event.RegistrationStatus,
		event.Visibility,
		event.CreatedBy,
		event.CreatedAt.UTC(),
		event.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Event returns a single event as seen by viewerID.
func (s *Store) Event(ctx context.Context, id, viewerID string) (*models.Event, error) {
	const op = "storage.sqlstore.Event"

	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = ? AND ` + visibleTo

	event, err := scanEvent(s.db.QueryRowContext(ctx, s.rebind(query), id, viewerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events := []models.Event{event}
	if err = s.loadMemberships(ctx, events); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &events[0], nil
}

// Events returns every event matching filter, ordered by date.
func (s *Store) Events(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	const op = "storage.sqlstore.Events"

	conds := []string{visibleTo}
	args := []any{filter.ViewerID}

	if filter.Category != "" {
		conds = append(conds, `e.category = ?`)
		args = append(args, filter.Category)
	}

	if filter.Search != "" {
		conds = append(conds, s.lower()+`(e.title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}

	if !filter.From.IsZero() {
		conds = append(conds, `e.event_date >= ?`)
		args = append(args, filter.From.UTC())
	}

	if !filter.Before.IsZero() {
		conds = append(conds, `e.event_date < ?`)
		args = append(args, filter.Before.UTC())
	}

	query := `SELECT ` + eventColumns + ` FROM events e
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY e.event_date ASC, e.created_at ASC`

	events, err := s.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// EventsByMember returns the events where userID holds a membership of the
// given kind. Events since made private by someone else are left out.
func (s *Store) EventsByMember(ctx context.Context, userID, kind string) ([]models.Event, error) {
	const op = "storage.sqlstore.EventsByMember"

	query := `SELECT ` + eventColumns + ` FROM events e
		JOIN memberships m ON m.event_id = e.id
		WHERE m.user_id = ? AND m.kind = ? AND ` + visibleTo + `
		ORDER BY e.event_date ASC, e.created_at ASC`

	events, err := s.queryEvents(ctx, query, userID, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Store) EventsByCreator(ctx context.Context, creatorID string) ([]models.Event, error) {
	const op = "storage.sqlstore.EventsByCreator"

	query := `SELECT ` + eventColumns + ` FROM events e
		WHERE e.created_by = ?
		ORDER BY e.event_date ASC, e.created_at ASC`

	events, err := s.queryEvents(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// UpdateEvent applies upd only when requesterID created the event.
func (s *Store) UpdateEvent(ctx context.Context, id, requesterID string, upd storage.EventUpdate) (*models.Event, error) {
	const op = "storage.sqlstore.UpdateEvent"

	sets := []string{"updated_at = ?"}
	args := []any{upd.UpdatedAt.UTC()}

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Date != nil {
		set("event_date", upd.Date.UTC())
	}
	if upd.Time != nil {
		set("event_time", *upd.Time)
	}
	if upd.Venue != nil {
		set("venue", *upd.Venue)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Mode != nil {
		set("mode", *upd.Mode)
	}
	if upd.FeeType != nil {
		set("fee_type", *upd.FeeType)
	}
	if upd.Fee != nil {
		if upd.FeeType != nil {
			set("fee", *upd.Fee)
		} else {
			// SET reads the old fee_type, which is also the new one here.
			sets = append(sets, "fee = CASE WHEN fee_type = 'free' THEN "+s.numeric()+" ELSE "+s.numeric()+" END")
			args = append(args, "0", *upd.Fee)
		}
	}
	if upd.RegistrationStatus != nil {
		set("registration_status", *upd.RegistrationStatus)
	}
	if upd.Visibility != nil {
		set("visibility", *upd.Visibility)
	}

	query := `UPDATE events SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND created_by = ?`
	args = append(args, id, requesterID)

	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.checkCreatorWrite(ctx, res, id); err != nil {
		return nil, err
	}

	return s.Event(ctx, id, requesterID)
}

// DeleteEvent removes the event and, through the foreign key, its memberships.
func (s *Store) DeleteEvent(ctx context.Context, id, requesterID string) error {
	const op = "storage.sqlstore.DeleteEvent"

	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM events WHERE id = ? AND created_by = ?`), id, requesterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.checkCreatorWrite(ctx, res, id)
}

// AddMembership inserts a ledger row if it is absent. The insert is a single
// conditional statement; the unique (event_id, user_id, kind) key decides
// duplicates, so concurrent callers cannot both succeed.
func (s *Store) AddMembership(ctx context.Context, eventID, userID, kind, status string) error {
	const op = "storage.sqlstore.AddMembership"

	query := `
		INSERT INTO memberships (event_id, user_id, kind, status)
		SELECT e.id, CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT) FROM events e
		WHERE e.id = ? AND ` + visibleTo + `
		ON CONFLICT (event_id, user_id, kind) DO NOTHING`

	res, err := s.db.ExecContext(ctx, s.rebind(query), userID, kind, status, eventID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected > 0 {
		return nil
	}

	var visible bool
	query = `SELECT EXISTS(SELECT 1 FROM events e WHERE e.id = ? AND ` + visibleTo + `)`
	if err = s.db.QueryRowContext(ctx, s.rebind(query), eventID, userID).Scan(&visible); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !visible {
		return storage.ErrEventNotFound
	}

	return storage.ErrMembershipExists
}

// Registrations lists the record-style view of an event's registrations.
func (s *Store) Registrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	const op = "storage.sqlstore.Registrations"

	query := `
		SELECT user_id, event_id, status, created_at
		FROM memberships
		WHERE event_id = ? AND kind = ?
		ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), eventID, models.KindRegistration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var registrations []models.Registration
	for rows.Next() {
		var r models.Registration
		if err = rows.Scan(&r.UserID, &r.EventID, &r.Status, &r.RegistrationDate); err != nil {
			return nil, fmt.Errorf("%s: failed to scan registration: %w", op, err)
		}
		registrations = append(registrations, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating registrations: %w", op, err)
	}

	return registrations, nil
}

// SetRegistrationStatus changes a registration's status when requesterID created the event.
func (s *Store) SetRegistrationStatus(ctx context.Context, eventID, userID, requesterID, status string) error {
	const op = "storage.sqlstore.SetRegistrationStatus"

	query := `
		UPDATE memberships SET status = ?
		WHERE event_id = ? AND user_id = ? AND kind = ?
		AND EXISTS (SELECT 1 FROM events e WHERE e.id = memberships.event_id AND e.created_by = ?)`

	res, err := s.db.ExecContext(ctx, s.rebind(query), status, eventID, userID, models.KindRegistration, requesterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected > 0 {
		return nil
	}

	creator, err := s.CreatorOf(ctx, eventID)
	if err != nil {
		return err
	}

	if creator != requesterID {
		return storage.ErrNotCreator
	}

	return storage.ErrRegistrationNotFound
}

// CompleteRegistrationsBefore marks Registered rows of events dated before t as Completed.
func (s *Store) CompleteRegistrationsBefore(ctx context.Context, t time.Time) (int64, error) {
	const op = "storage.sqlstore.CompleteRegistrationsBefore"

	query := `
		UPDATE memberships SET status = ?
		WHERE kind = ? AND status = ?
		AND event_id IN (SELECT id FROM events WHERE event_date < ?)`

	res, err := s.db.ExecContext(ctx, s.rebind(query),
		models.RegistrationCompleted,
		models.KindRegistration,
		models.RegistrationRegistered,
		t.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return affected, nil
}

// CreatorOf returns the creator of an event regardless of visibility.
func (s *Store) CreatorOf(ctx context.Context, eventID string) (string, error) {
	const op = "storage.sqlstore.CreatorOf"

	var creator string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT created_by FROM events WHERE id = ?`), eventID).Scan(&creator)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrEventNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return creator, nil
}

func (s *Store) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.sqlstore.Profile"

	query := `
		SELECT user_id, name, gender, phone, college, degree, branch, year, bio,
			skills, interests, profile_completion, updated_at
		FROM profiles
		WHERE user_id = ?`

	var (
		p         models.Profile
		skills    string
		interests string
	)

	err := s.db.QueryRowContext(ctx, s.rebind(query), userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Gender,
		&p.Phone,
		&p.College,
		&p.Degree,
		&p.Branch,
		&p.Year,
		&p.Bio,
		&skills,
		&interests,
		&p.ProfileCompletion,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("%s: failed to decode skills: %w", op, err)
	}

	if err = json.Unmarshal([]byte(interests), &p.Interests); err != nil {
		return nil, fmt.Errorf("%s: failed to decode interests: %w", op, err)
	}

	return &p, nil
}

// CreateProfile inserts p unless a profile for the user already exists.
func (s *Store) CreateProfile(ctx context.Context, p models.Profile) error {
	const op = "storage.sqlstore.CreateProfile"

	if err := s.writeProfile(ctx, p, `ON CONFLICT (user_id) DO NOTHING`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveProfile inserts or replaces the profile of p.UserID.
func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	const op = "storage.sqlstore.SaveProfile"

	conflict := `ON CONFLICT (user_id) DO UPDATE SET
		name = excluded.name,
		gender = excluded.gender,
		phone = excluded.phone,
		college = excluded.college,
		degree = excluded.degree,
		branch = excluded.branch,
		year = excluded.year,
		bio = excluded.bio,
		skills = excluded.skills,
		interests = excluded.interests,
		profile_completion = excluded.profile_completion,
		updated_at = excluded.updated_at`

	if err := s.writeProfile(ctx, p, conflict); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) writeProfile(ctx context.Context, p models.Profile, onConflict string) error {
	skills, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return err
	}

	interests, err := json.Marshal(nonNil(p.Interests))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (user_id, name, gender, phone, college, degree, branch, year, bio,
			skills, interests, profile_completion, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ` + onConflict

	_, err = s.db.ExecContext(ctx, s.rebind(query),
		p.UserID,
		p.Name,
		p.Gender,
		p.Phone,
		p.College,
		p.Degree,
		p.Branch,
		p.Year,
		p.Bio,
		string(skills),
		string(interests),
		p.ProfileCompletion,
		p.UpdatedAt.UTC(),
	)

	return err
}

func (s *Store) checkCreatorWrite(ctx context.Context, res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected > 0 {
		return nil
	}

	if _, err = s.CreatorOf(ctx, id); err != nil {
		return err
	}

	return storage.ErrNotCreator
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	if err = s.loadMemberships(ctx, events); err != nil {
		return nil, err
	}

	return events, nil
}

// loadMemberships fills the projected membership arrays of events in one query.
func (s *Store) loadMemberships(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	index := make(map[string]int, len(events))
	placeholders := make([]string, 0, len(events))
	args := make([]any, 0, len(events))

	for i := range events {
		events[i].RegisteredUsers = []string{}
		events[i].BookmarkedBy = []string{}
		index[events[i].ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, events[i].ID)
	}

	query := `
		SELECT event_id, user_id, kind
		FROM memberships
		WHERE event_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to get memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, userID, kind string
		if err = rows.Scan(&eventID, &userID, &kind); err != nil {
			return fmt.Errorf("failed to scan membership: %w", err)
		}

		i, ok := index[eventID]
		if !ok {
			continue
		}

		switch kind {
		case models.KindRegistration:
			events[i].RegisteredUsers = append(events[i].RegisteredUsers, userID)
		case models.KindBookmark:
			events[i].BookmarkedBy = append(events[i].BookmarkedBy, userID)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating memberships: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Venue,
		&event.Category,
		&event.Mode,
		&event.FeeType,
		&event.Fee,
		&event.RegistrationStatus,
		&event.Visibility,
		&event.CreatedBy,
		&event.CreatedAt,
	)
	if err != nil {
		return event, err
	}

	event.Date = event.Date.UTC()
	event.CreatedAt = event.CreatedAt.UTC()

	return event, nil
}

// rebind converts '?' placeholders to the dialect's form.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

func (s *Store) lower() string {
	if s.dialect == SQLite {
		return SQLiteLower
	}
	return "LOWER"
}

// numeric is a placeholder typed for the fee column.
func (s *Store) numeric() string {
	if s.dialect == Postgres {
		return "CAST(? AS NUMERIC)"
	}
	return "?"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
