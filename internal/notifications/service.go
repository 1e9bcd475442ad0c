package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type preferenceRepository interface {
	FindByToken(ctx context.Context, token string) (*models.EmailPreference, error)
	FindByEmail(ctx context.Context, email string) (*models.EmailPreference, error)
	Create(ctx context.Context, pref *models.EmailPreference) error
	UpdateFlags(ctx context.Context, pref *models.EmailPreference) error
}

// Preferences is the public view of an email preference link.
type Preferences struct {
	Email         string    `json:"email"`
	Newsletter    bool      `json:"newsletter"`
	Marketing     bool      `json:"marketing"`
	Transactional bool      `json:"transactional"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdatePreferencesInput toggles individual subscriptions; nil fields are left alone.
type UpdatePreferencesInput struct {
	Newsletter    *bool
	Marketing     *bool
	Transactional *bool
}

// Service manages email preferences reached through tokenized links.
type Service interface {
	Get(ctx context.Context, token string) (*Preferences, error)
	Update(ctx context.Context, token string, input UpdatePreferencesInput) (*Preferences, error)
	Subscribe(ctx context.Context, email string) (*Preferences, bool, error)
}

type service struct {
	repo preferenceRepository
}

// NewService builds the email preference service.
func NewService(repo preferenceRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("email preference repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Preferences, error) {
	pref, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return toPreferences(pref), nil
}

func (s *service) Update(ctx context.Context, token string, input UpdatePreferencesInput) (*Preferences, error) {
	pref, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if input.Newsletter != nil {
		pref.Newsletter = *input.Newsletter
	}
	if input.Marketing != nil {
		pref.Marketing = *input.Marketing
	}
	if input.Transactional != nil {
		pref.Transactional = *input.Transactional
	}
	if err := s.repo.UpdateFlags(ctx, pref); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update email preferences")
	}
	return toPreferences(pref), nil
}

// Subscribe opts email into the newsletter, creating the preference row and its
// link token on first contact. The bool reports whether a row was created.
func (s *service) Subscribe(ctx context.Context, email string) (*Preferences, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	pref, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.optIn(ctx, pref)
	case !db.IsNotFound(err):
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load email preferences")
	}

	pref = &models.EmailPreference{
		Email:         email,
		Token:         uuid.NewString(),
		Newsletter:    true,
		Transactional: true,
	}
	if err := s.repo.Create(ctx, pref); err != nil {
		if !db.IsUniqueViolation(err, "") {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create email preferences")
		}
		// a concurrent subscribe won the insert
		existing, findErr := s.repo.FindByEmail(ctx, email)
		if findErr != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load email preferences")
		}
		return s.optIn(ctx, existing)
	}
	return toPreferences(pref), true, nil
}

func (s *service) optIn(ctx context.Context, pref *models.EmailPreference) (*Preferences, bool, error) {
	if !pref.Newsletter {
		pref.Newsletter = true
		if err := s.repo.UpdateFlags(ctx, pref); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update email preferences")
		}
	}
	return toPreferences(pref), false, nil
}

func (s *service) load(ctx context.Context, token string) (*models.EmailPreference, error) {
	token = strings.TrimSpace(token)
	if _, err := uuid.Parse(token); err != nil {
		return nil, pkgerrors.NotFound("email preferences not found")
	}
	pref, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("email preferences not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load email preferences")
	}
	return pref, nil
}

func toPreferences(pref *models.EmailPreference) *Preferences {
	return &Preferences{
		Email:         pref.Email,
		Newsletter:    pref.Newsletter,
		Marketing:     pref.Marketing,
		Transactional: pref.Transactional,
		UpdatedAt:     pref.UpdatedAt,
	}
}
