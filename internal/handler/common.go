package handler

import (
	"errors"
	"net/http"
	"time"

	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// idUri 路徑上的 :id
type idUri struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// BindID 解析路徑上的 :id，格式錯誤時已回應 400
func BindID(c *gin.Context) (uuid.UUID, bool) {
	var uri idUri
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleError 依錯誤種類對應 HTTP 狀態碼
func handleError(c *gin.Context, err error, operation string) {
	log := logger.FromContext(c.Request.Context(), "handler").With(zap.String("operation", operation), zap.Error(err))

	var already *apperrors.AlreadyCheckedInError
	switch {
	case errors.As(err, &already):
		log.Info("Already checked in")
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Ticket already checked in",
			"checked_in_at": already.CheckedInAt.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, apperrors.ErrPromotionFailed):
		log.Error("Waitlist promotion failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Change saved but waitlist promotion failed, operator attention required",
		})
	case errors.Is(err, apperrors.ErrCapacityRace):
		log.Warn("Capacity race")
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"retryable": true,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		log.Info("Not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrConflict):
		log.Info("Conflict")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidPayload):
		log.Info("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
