package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auth-api/internal/application"
	"auth-api/internal/domain/entity"
	"auth-api/internal/interface/middleware"
	"auth-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// userBody serializes a user record. The password hash is deliberately
// absent; it must never leave the service.
func userBody(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"provider":   u.Provider,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Me GET /user/me
// The principal comes from the verified token; the record may have been
// deleted since issuance, which yields a plain 404.
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found.", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("current user lookup failed")
		}
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	response.OK(c, userBody(u))
}

// Search GET /user/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user search failed")
		}
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	response.OK(c, gin.H{"results": hits})
}
