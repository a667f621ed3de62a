package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
)

func (s *HttpSrv) ListNotifications(c *gin.Context) {
	list, err := v1.NewNotificationLogic(c, s.Core).ListNotifications()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, list)
}

func (s *HttpSrv) NotificationUnreadCount(c *gin.Context) {
	total, err := v1.NewNotificationLogic(c, s.Core).UnreadCount()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, gin.H{"total": total})
}

func (s *HttpSrv) MarkNotificationRead(c *gin.Context) {
	if err := v1.NewNotificationLogic(c, s.Core).MarkRead(c.Param("notificationid")); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) MarkAllNotificationsRead(c *gin.Context) {
	if err := v1.NewNotificationLogic(c, s.Core).MarkAllRead(); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

// ResolveNotificationJournal answers with the journal a notification points
// at, or null when the journal is gone.
func (s *HttpSrv) ResolveNotificationJournal(c *gin.Context) {
	journal, err := v1.NewNotificationLogic(c, s.Core).ResolveJournal(c.Param("notificationid"))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, journal)
}
