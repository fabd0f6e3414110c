package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellnessdiary/api/internal/common"
)

type registerRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: all fields are required", common.ErrorValidation))
		return
	}

	if _, err := s.users.Register(c.Request.Context(), req.Firstname, req.Lastname, req.Email, req.Password); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response{Success: true, Message: "User registered successfully"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: please provide both email and password", common.ErrorValidation))
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.setSessionCookie(c, token)

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Login successful",
		Data:    profileFromUser(user),
		Token:   token,
	})
}

func (s *Server) logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, response{Success: true, Message: "Logout successful"})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, response{Success: true, Data: profileFromUser(currentUser(c))})
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, req.Firstname, req.Lastname)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    profileFromUser(user),
	})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: a valid email is required", common.ErrorValidation))
		return
	}

	if err := s.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Email sent to %s with reset instructions", req.Email),
	})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: a new password is required", common.ErrorValidation))
		return
	}

	if err := s.users.ResetPassword(c.Request.Context(), c.Param("resetToken"), req.Password); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "Password has been reset successfully"})
}

func (s *Server) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: both current password and new password are required", common.ErrorValidation))
		return
	}

	if err := s.users.UpdatePassword(c.Request.Context(), currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "Password updated successfully"})
}
