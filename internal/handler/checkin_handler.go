package handler

import (
	"net/http"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	service service.CheckInService
}

func NewCheckInHandler(service service.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("tickets/:id", h.GetTicket)
	router.GET("rsvps/:id/ticket", h.GetTicketByRsvp)
	router.POST("tickets/:id/check-in", h.CheckInByID)
	router.POST("events/:id/check-ins/qr", h.CheckInByQR)
	router.GET("events/:id/check-in-stats", h.EventStats)
}

func (h *CheckInHandler) GetTicket(c *gin.Context) {
	ticketID, ok := BindID(c)
	if !ok {
		return
	}

	ticket, err := h.service.GetTicket(c.Request.Context(), CallerFrom(c), ticketID)
	if err != nil {
		handleError(c, err, "GetTicket")
		return
	}
	handleSuccess(c, ticket, http.StatusOK)
}

func (h *CheckInHandler) GetTicketByRsvp(c *gin.Context) {
	rsvpID, ok := BindID(c)
	if !ok {
		return
	}

	ticket, err := h.service.GetTicketByRsvp(c.Request.Context(), CallerFrom(c), rsvpID)
	if err != nil {
		handleError(c, err, "GetTicketByRsvp")
		return
	}
	handleSuccess(c, ticket, http.StatusOK)
}

func (h *CheckInHandler) CheckInByID(c *gin.Context) {
	ticketID, ok := BindID(c)
	if !ok {
		return
	}

	ticket, err := h.service.CheckInByID(c.Request.Context(), CallerFrom(c), ticketID)
	if err != nil {
		handleError(c, err, "CheckInByID")
		return
	}
	handleSuccess(c, ticket, http.StatusOK)
}

// CheckInByQR 掃描失敗也回 200，由 body 的 success / reason 表示
func (h *CheckInHandler) CheckInByQR(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	var req model.CheckInByQRRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.CheckInByQR(c.Request.Context(), CallerFrom(c), eventID, req.Payload)
	if err != nil {
		handleError(c, err, "CheckInByQR")
		return
	}
	handleSuccess(c, result, http.StatusOK)
}

func (h *CheckInHandler) EventStats(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	stats, err := h.service.EventStats(c.Request.Context(), CallerFrom(c), eventID)
	if err != nil {
		handleError(c, err, "EventStats")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}
