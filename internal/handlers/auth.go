package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CHH01/runipet/internal/database"
	"github.com/CHH01/runipet/internal/models"
	"github.com/CHH01/runipet/internal/services"
	"github.com/CHH01/runipet/pkg/logger"
	"github.com/CHH01/runipet/pkg/utils"
)

type registerInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, password, email and nickname are required"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken"})
		return
	}

	database.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Username:     input.Username,
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hashed),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		logger.Warn().Err(err).Str("username", input.Username).Msg("Registration failed: unique violation")
		c.JSON(http.StatusConflict, gin.H{"error": "User with this username or email already exists"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration complete",
		"user_id": user.ID,
	})
}

// Login handles POST /auth/login
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Clients branch on whether a pet exists yet.
	var petCount int64
	database.DB.Model(&models.Pet{}).Where("user_id = ?", user.ID).Count(&petCount)

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"access_token":  token,
		"user_id":       user.ID,
		"username":      user.Username,
		"nickname":      user.Nickname,
		"profile_image": user.ProfileImage,
		"role":          user.Role,
		"coins":         user.Coins,
		"has_pet":       petCount > 0,
	})
}

// Logout handles POST /auth/logout by blacklisting the token's JTI in
// Redis for its remaining lifetime.
func Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	claims, ok := claimsValue.(*utils.Claims)
	if !ok || claims == nil || claims.GetJTI() == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl > 0 {
		if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
			logger.Error().Err(err).Str("jti", claims.GetJTI()).Msg("Failed to blacklist token")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CheckEmail handles POST /auth/check-email
func CheckEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)

	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Email is already in use"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

// CheckUsername handles POST /auth/check-username
func CheckUsername(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)

	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"available": false, "error": "Username is already taken"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "message": "Username is available"})
}

// SendVerificationEmail handles POST /auth/verify-email/send. The code
// lives in Redis under a TTL, so stale codes expire on their own.
func SendVerificationEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	code := fmt.Sprintf("%06d", rand.Intn(1000000))

	if err := database.SetVerificationCode(email, code); err != nil {
		logger.Error().Err(err).Msg("Failed to store verification code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
		return
	}

	if err := services.SendVerificationEmail(email, code); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Failed to send verification email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// ConfirmVerificationEmail handles POST /auth/verify-email/confirm
func ConfirmVerificationEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	code := strings.TrimSpace(input.Code)

	saved, err := database.GetVerificationCode(email)
	if err != nil || saved != code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code is invalid or expired"})
		return
	}

	database.DeleteVerificationCode(email)
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// FindID handles POST /auth/find-id
func FindID(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and nickname are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ? AND nickname = ?", input.Email, input.Nickname).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching user found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// ResetPassword handles POST /auth/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and new password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? AND email = ?", input.Username, input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No account matches the given details"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password during reset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Password reset")
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount handles DELETE /auth/account. Everything the user owns
// goes in one transaction; a failure anywhere rolls the whole cascade back.
func DeleteAccount(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&models.ExerciseRecord{},
			&models.Challenge{},
			&models.UserAchievement{},
			&models.UserItem{},
			&models.UserSettings{},
			&models.Inquiry{},
			&models.Pet{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		// Friendships reference the user from either side.
		if err := tx.Where("user_id = ? OR friend_id = ?", userID, userID).Delete(&models.SocialRelation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Account deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	logger.Info().Str("user_id", userID).Msg("Account deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
