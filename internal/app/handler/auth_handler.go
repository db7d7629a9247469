package handler

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/config"
	"buildcost/internal/app/ds"
	"buildcost/internal/app/dto"
	"buildcost/internal/app/middleware"
	"buildcost/internal/app/role"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// Revoker пишет отозванные токены в blacklist
type Revoker interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

// AuthHandler отзыв токенов. Выдача токенов живёт вне сервиса.
type AuthHandler struct {
	Revoker Revoker
	Config  *config.Config
}

// NewAuthHandler revoker может быть nil (redis не настроен)
func NewAuthHandler(revoker Revoker, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Revoker: revoker,
		Config:  cfg,
	}
}

// RegisterAuthRoutes регистрирует маршруты отзыва токена
func (h *AuthHandler) RegisterAuthRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	anyRole := authMiddleware.WithAuthCheck(role.Viewer, role.Buyer, role.Estimator, role.Admin)
	router.POST("/api/auth/logout", anyRole, h.LogoutUser)
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Отзывает текущий токен: он попадает в blacklist до истечения срока
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 501 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	if h.Revoker == nil {
		c.JSON(http.StatusNotImplemented, dto.ErrorResponse{
			Status:  "fail",
			Message: apperr.ErrUnavailable.Error(),
		})
		return
	}

	// Токен уже проверен WithAuthCheck, нужен только срок действия
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	claims := &ds.JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "fail", Message: "invalid token"})
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.Revoker.WriteJWTToBlacklist(c.Request.Context(), tokenString, ttl); err != nil {
			logrus.WithFields(logrus.Fields{
				"tenant_id": claims.TenantID,
				"user_id":   claims.UserID,
			}).Error(err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Status:  "fail",
				Message: "Внутренняя ошибка сервера",
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "Пользователь вышел из системы",
	})
}
