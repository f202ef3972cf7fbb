package handlers

import (
	"net/http"

	"curabot/middleware"
	"curabot/services/user"
	"curabot/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service user.UserService
}

// RegisterHandler handles POST /api/auth/register. An admin token may assign the role.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	_, callerRole := middleware.CurrentUser(c)
	resp, err := h.Service.Register(c.Request.Context(), req, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	u, err := h.Service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User authorized", "user": u})
}
