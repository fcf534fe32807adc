package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/middleware"
	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/utils"
)

// CreateNotificationRequest is the payload for posting a notification
type CreateNotificationRequest struct {
	RecipientID string `json:"recipient_id" validate:"omitempty,uuid"`
	Title       string `json:"title" validate:"required"`
	Body        string `json:"body" validate:"required"`
}

// ListNotificationsHandler returns the notification feed. The endpoint is
// public but personalized: anonymous callers see broadcasts only, while an
// authenticated caller also gets notifications addressed to them. It sits
// behind OptionalAuth, so the identity may be nil.
func ListNotificationsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var recipient *uuid.UUID
		if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
			if id, err := uuid.Parse(identity.SubjectID); err == nil {
				recipient = &id
			}
		}

		notifications, err := deps.Notifications.ListFor(r.Context(), recipient)
		if err != nil {
			deps.Logger.Error("failed to list notifications", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteOK(w, notifications)
	}
}

// CreateNotificationHandler posts a notification; an empty recipient makes
// it a broadcast
func CreateNotificationHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateNotificationRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		var recipient *uuid.UUID
		if req.RecipientID != "" {
			id, err := uuid.Parse(req.RecipientID)
			if err != nil {
				_ = utils.WriteBadRequest(w, "Invalid recipient ID")
				return
			}
			recipient = &id
		}

		notification := models.NewNotification(recipient, req.Title, req.Body)
		if err := deps.Notifications.Create(r.Context(), notification); err != nil {
			deps.Logger.Error("failed to create notification", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteCreated(w, notification)
	}
}
