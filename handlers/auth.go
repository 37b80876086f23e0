package handlers

import (
	"net/http"

	"campuspilot/services/user"
	"campuspilot/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and the OTP flow.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	usr, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Check your inbox for a verification code.",
		"user_id": usr.ID,
	})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	token, usr, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": usr})
}

// VerifyOTP handles POST /api/users/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		OTP    string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := h.Users.VerifyOTP(c.Request.Context(), req.UserID, req.OTP); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "OTP verification failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account verified."})
}

// ForgotPassword handles POST /api/users/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := h.Users.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start password reset", err.Error())
		return
	}
	// Same response regardless of whether the account exists.
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent."})
}

// ResetPassword handles POST /api/users/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := h.Users.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Password reset failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated."})
}

// UpdateFCMToken handles PUT /api/users/fcm-token.
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	uid, _ := c.Get("userID")
	userID, _ := uid.(string)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	if err := h.Users.UpdateFCMToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update FCM token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered for notifications."})
}

// RevokeToken handles DELETE /api/users/revoke.
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	uid, exists := c.Get("userID")
	userID, _ := uid.(string)
	if !exists || userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	if err := h.Users.RevokeToken(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out."})
}
