package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ArowuTest/lottery-odds/internal/config"
	"github.com/ArowuTest/lottery-odds/internal/models"
)

const minPasswordLen = 6

// CreateUser creates a new admin user.
func CreateUser(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	var count int64
	if err := config.DB.Model(&models.AdminUser{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newUser := models.AdminUser{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashed),
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user: " + err.Error()})
		return
	}
	log.Info().Str("username", newUser.Username).Str("by", c.GetString("username")).Msg("admin user created")
	c.JSON(http.StatusCreated, newUser)
}

// ListUsers returns all admin users.
func ListUsers(c *gin.Context) {
	var users []models.AdminUser
	if err := config.DB.Order("username").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdatePassword replaces a user's password.
func UpdatePassword(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID"})
		return
	}

	var payload struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	if len(payload.Password) < minPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password too short"})
		return
	}

	var existing models.AdminUser
	if err := config.DB.First(&existing, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error: " + err.Error()})
		}
		return
	}

	h, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password"})
		return
	}
	existing.PasswordHash = string(h)
	if err := config.DB.Save(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteUser removes a user by ID. Admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID"})
		return
	}
	if uid.String() == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the signed-in user"})
		return
	}

	res := config.DB.Delete(&models.AdminUser{}, "id = ?", uid)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
