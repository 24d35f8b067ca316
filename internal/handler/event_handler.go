package handler

import (
	"net/http"

	"go-gin-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler 主辦人查看活動的回覆、候補與座位
type EventHandler struct {
	service service.RsvpService
}

func NewEventHandler(service service.RsvpService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("events/:id/rsvps", h.ListRsvps)
	router.GET("events/:id/waitlist", h.ListWaitlist)
	router.GET("events/:id/occupancy", h.Occupancy)
	router.POST("events/:id/waitlist/expire", h.ExpireWaitlist)
}

func (h *EventHandler) ListRsvps(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	rsvps, err := h.service.ListByEvent(c.Request.Context(), CallerFrom(c), eventID)
	if err != nil {
		handleError(c, err, "ListRsvps")
		return
	}
	c.JSON(http.StatusOK, rsvps)
}

func (h *EventHandler) ListWaitlist(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	entries, err := h.service.ListWaitlist(c.Request.Context(), CallerFrom(c), eventID)
	if err != nil {
		handleError(c, err, "ListWaitlist")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EventHandler) Occupancy(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	occupancy, err := h.service.Occupancy(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err, "Occupancy")
		return
	}
	c.JSON(http.StatusOK, occupancy)
}

func (h *EventHandler) ExpireWaitlist(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	expired, err := h.service.ExpireWaitlist(c.Request.Context(), CallerFrom(c), eventID)
	if err != nil {
		handleError(c, err, "ExpireWaitlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}
