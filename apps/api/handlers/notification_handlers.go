package handlers

import (
	"net/http"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the current toast
type NotificationHandler struct {
	notifier interfaces.Notifier
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier interfaces.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// GetNotification godoc
// @Summary Current notification
// @Description Returns the toast currently on screen, if any
// @Tags notifications
// @Produce json
// @Success 200 {object} business.Notification
// @Router /notifications [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	sendSuccess(c, http.StatusOK, h.notifier.Current())
}

// DismissNotification godoc
// @Summary Dismiss the notification
// @Tags notifications
// @Success 204
// @Router /notifications [delete]
func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	h.notifier.Clear()
	c.Status(http.StatusNoContent)
}
