package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/models"
	"campusEvents/internal/storage"
)

type Storage interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p models.Profile) error
	SaveProfile(ctx context.Context, p models.Profile) error
}

// Update carries the fields a user may change. Nil fields are kept.
type Update struct {
	Name      *string
	Gender    *string
	Phone     *string
	College   *string
	Degree    *string
	Branch    *string
	Year      *string
	Bio       *string
	Skills    []string
	Interests []string
}

type Service struct {
	log     *slog.Logger
	storage Storage
	now     func() time.Time
}

func New(log *slog.Logger, storage Storage) *Service {
	return &Service{
		log:     log,
		storage: storage,
		now:     time.Now,
	}
}

// Get returns the user's profile, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "services.profile.Get"

	p, err := s.storage.Profile(ctx, userID)
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, storage.ErrProfileNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Insert-if-absent: a concurrent first fetch may win the insert.
	err = s.storage.CreateProfile(ctx, models.Profile{
		UserID:    userID,
		Skills:    []string{},
		Interests: []string{},
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("profile created", slog.String("op", op), slog.String("user_id", userID))

	p, err = s.storage.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// Update applies upd, recomputes the completion percentage and stores the result.
func (s *Service) Update(ctx context.Context, userID string, upd Update) (*models.Profile, error) {
	const op = "services.profile.Update"

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	setString(&p.Name, upd.Name)
	setString(&p.Gender, upd.Gender)
	setString(&p.Phone, upd.Phone)
	setString(&p.College, upd.College)
	setString(&p.Degree, upd.Degree)
	setString(&p.Branch, upd.Branch)
	setString(&p.Year, upd.Year)
	setString(&p.Bio, upd.Bio)

	if upd.Skills != nil {
		p.Skills = cleanList(upd.Skills)
	}
	if upd.Interests != nil {
		p.Interests = cleanList(upd.Interests)
	}

	p.ProfileCompletion = p.Completion()
	p.UpdatedAt = s.now().UTC()

	if err = s.storage.SaveProfile(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// cleanList trims entries and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
