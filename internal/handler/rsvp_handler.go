package handler

import (
	"net/http"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type RsvpHandler struct {
	service service.RsvpService
}

func NewRsvpHandler(service service.RsvpService) *RsvpHandler {
	return &RsvpHandler{service: service}
}

func (h *RsvpHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("events/:id/rsvps", h.SubmitRsvp)
	router.GET("rsvps/:id", h.GetRsvp)
	router.PATCH("rsvps/:id", h.UpdateRsvp)
	router.DELETE("rsvps/:id", h.DeleteRsvp)
	router.PUT("rsvps/:id/approval", h.SetApproval)
}

func (h *RsvpHandler) SubmitRsvp(c *gin.Context) {
	eventID, ok := BindID(c)
	if !ok {
		return
	}

	var req model.SubmitRsvpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Submit(c.Request.Context(), CallerFrom(c), eventID, req)
	if err != nil {
		handleError(c, err, "SubmitRsvp")
		return
	}

	handleSuccess(c, result, http.StatusCreated)
}

func (h *RsvpHandler) GetRsvp(c *gin.Context) {
	rsvpID, ok := BindID(c)
	if !ok {
		return
	}

	rsvp, err := h.service.Get(c.Request.Context(), CallerFrom(c), rsvpID)
	if err != nil {
		handleError(c, err, "GetRsvp")
		return
	}

	handleSuccess(c, rsvp, http.StatusOK)
}

func (h *RsvpHandler) UpdateRsvp(c *gin.Context) {
	rsvpID, ok := BindID(c)
	if !ok {
		return
	}

	var params model.UpdateRsvpParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	rsvp, err := h.service.Update(c.Request.Context(), CallerFrom(c), rsvpID, params)
	if err != nil {
		handleError(c, err, "UpdateRsvp")
		return
	}

	handleSuccess(c, rsvp, http.StatusOK)
}

func (h *RsvpHandler) DeleteRsvp(c *gin.Context) {
	rsvpID, ok := BindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), CallerFrom(c), rsvpID); err != nil {
		handleError(c, err, "DeleteRsvp")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *RsvpHandler) SetApproval(c *gin.Context) {
	rsvpID, ok := BindID(c)
	if !ok {
		return
	}

	var req model.SetApprovalRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	rsvp, err := h.service.SetApproval(c.Request.Context(), CallerFrom(c), rsvpID, req.ApprovalStatus)
	if err != nil {
		handleError(c, err, "SetApproval")
		return
	}

	handleSuccess(c, rsvp, http.StatusOK)
}
