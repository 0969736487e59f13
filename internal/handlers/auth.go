// internal/handlers/auth.go

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ArowuTest/lottery-odds/internal/auth"
	"github.com/ArowuTest/lottery-odds/internal/config"
	"github.com/ArowuTest/lottery-odds/internal/models"
)

const bearerPrefix = "Bearer "

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges admin credentials for a token that can run and delete simulations.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload: " + err.Error()})
		return
	}
	username := strings.TrimSpace(req.Username)

	var user models.AdminUser
	err := config.DB.Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rejectLogin(c, username, "unknown user")
		return
	case err != nil:
		log.Error().Err(err).Str("username", username).Msg("login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		rejectLogin(c, username, "wrong password")
		return
	}

	token, err := auth.GenerateJWT(user.ID.String(), user.Username)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Info().Str("username", user.Username).Str("client_ip", c.ClientIP()).Msg("admin signed in")
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user_id":  user.ID.String(),
		"username": user.Username,
	})
}

// rejectLogin answers every failed sign-in the same way; only the log says why.
func rejectLogin(c *gin.Context, username, reason string) {
	log.Warn().Str("username", username).Str("client_ip", c.ClientIP()).Str("reason", reason).Msg("admin sign-in rejected")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
}

// RequireAuth admits requests carrying a valid bearer token whose admin still
// exists under the same username. Tokens of deleted or renamed admins stop
// working before they expire. The admin's id and username are set on the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := auth.ParseAndVerify(strings.TrimPrefix(h, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var user models.AdminUser
		err = config.DB.Select("id", "username").First(&user, "id = ?", claims.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound), err == nil && user.Username != claims.Username:
			log.Warn().Str("user_id", claims.UserID).Str("username", claims.Username).Msg("token for a removed admin")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin account no longer exists"})
			return
		case err != nil:
			log.Error().Err(err).Msg("admin lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
