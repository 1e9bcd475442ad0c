package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// GetEmailPreferences reads the preferences behind a tokenized link.
func GetEmailPreferences(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "email preference service unavailable"))
			return
		}

		prefs, err := svc.Get(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

// UpdateEmailPreferences toggles the subscriptions behind a tokenized link.
func UpdateEmailPreferences(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "email preference service unavailable"))
			return
		}

		var payload updatePreferencesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.Update(r.Context(), chi.URLParam(r, "token"), notifications.UpdatePreferencesInput{
			Newsletter:    payload.Newsletter,
			Marketing:     payload.Marketing,
			Transactional: payload.Transactional,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

// NewsletterSubscribe opts an email into the newsletter.
func NewsletterSubscribe(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "email preference service unavailable"))
			return
		}

		var payload subscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, created, err := svc.Subscribe(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, prefs)
	}
}

type updatePreferencesRequest struct {
	Newsletter    *bool `json:"newsletter,omitempty"`
	Marketing     *bool `json:"marketing,omitempty"`
	Transactional *bool `json:"transactional,omitempty"`
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}
