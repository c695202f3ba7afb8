package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auth-api/internal/application"
	"auth-api/pkg/response"
	"auth-api/pkg/validation"
)

// Error messages are part of the contract. Login failures use ONE
// message for both unknown email and wrong password so responses are
// byte-identical and account existence cannot be probed.
const (
	msgRegistered         = "User registered successfully"
	msgEmailTaken         = "Email address already in use."
	msgInvalidCredentials = "Invalid email or password."
	msgInternal           = "Internal server error."
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload.", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, msgEmailTaken, nil)
		case errors.Is(err, application.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Invalid request payload.", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("signup failed")
			}
			response.Error(c, http.StatusInternalServerError, msgInternal, nil)
		}
		return
	}

	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user registered")
	}
	response.Created(c, "/user/me", msgRegistered)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload.", validation.ToDetails(err))
		return
	}

	token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}

	response.OK(c, response.NewAuthResponse(token))
}
