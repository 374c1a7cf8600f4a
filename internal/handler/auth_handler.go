package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/infra/identity"
	"github.com/KasumiMercury/situgas/internal/service/auth"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User    *domain.User      `json:"user"`
	Session *identity.Session `json:"session"`
}

func clientInfo(c *gin.Context) auth.ClientInfo {
	return auth.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}, clientInfo(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, authResponse{User: result.User, Session: result.Session})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, authResponse{User: result.User, Session: result.Session})
}

func (h *AuthHandler) Me(c *gin.Context) {
	respondData(c, http.StatusOK, currentUser(c))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), currentUserID(c), accessToken(c))
	c.Status(http.StatusNoContent)
}
