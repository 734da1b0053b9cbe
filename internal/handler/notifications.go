package handler

import (
	"net/http"

	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/middleware"
	"github.com/anbuchelva/cams/internal/notify"
)

// NotificationsHandler serves the pull-style notification feed.
type NotificationsHandler struct {
	notifier *notify.Notifier
}

// NewNotificationsHandler creates a NotificationsHandler.
func NewNotificationsHandler(notifier *notify.Notifier) *NotificationsHandler {
	return &NotificationsHandler{notifier: notifier}
}

// List returns the caller's notifications: their recently created projects
// and their projects nearing completion.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	feed := h.notifier.FeedFor(r.Context(), claims.ID)
	if feed == nil {
		feed = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, feed)
}
