package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/model"
	apperrors "go-gin-rsvp/pkg/app_errors"
	"go-gin-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	callerKey       = "caller"
)

// RequestID 沿用上游的 X-Request-Id，沒有就產生一個並放進 request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Metrics 以路由樣板為 label 記錄請求耗時
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Claims 身分服務簽發的 access token，sub 為使用者 UUID
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth 驗證 Bearer token 並把 model.Caller 放進 gin context
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := parseCaller(c.GetHeader("Authorization"), secret)
		if err != nil {
			handleError(c, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err), "Auth")
			c.Abort()
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

func parseCaller(header string, secret []byte) (model.Caller, error) {
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return model.Caller{}, errors.New("missing bearer token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return model.Caller{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Caller{}, fmt.Errorf("invalid subject: %w", err)
	}

	role := model.Role(claims.Role)
	switch role {
	case model.RoleAttendee, model.RoleOrganizer, model.RoleAdmin:
	case "":
		role = model.RoleAttendee
	default:
		return model.Caller{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return model.Caller{UserID: userID, Role: role}, nil
}

// SignToken 簽發測試與內部工具用的 token
func SignToken(secret []byte, caller model.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(caller.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// CallerFrom 取出 Auth middleware 放入的呼叫者
func CallerFrom(c *gin.Context) model.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}
