package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/internal/services"
	"github.com/CHH01/runipet/pkg/logger"
	"github.com/CHH01/runipet/pkg/metrics"
)

type createChallengeInput struct {
	Title       string `json:"title" binding:"required"`
	Goal        *int   `json:"goal" binding:"required"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
}

type updateProgressInput struct {
	// Pointer so an absent field leaves progress unchanged.
	Progress *int `json:"progress"`
}

// GetChallenges handles GET /challenges
func GetChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	challenges, err := services.ListChallenges(userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	c.JSON(http.StatusOK, challenges)
}

// CreateChallenge handles POST /challenges
func CreateChallenge(c *gin.Context) {
	userID := c.GetString("userId")

	var input createChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and goal are required"})
		return
	}

	challenge, err := services.CreateChallenge(userID, services.CreateChallengeInput{
		Title:       input.Title,
		Description: input.Description,
		Goal:        *input.Goal,
		Reward:      input.Reward,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidChallenge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create challenge")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Challenge created", "challenge": challenge})
}

// UpdateChallengeProgress handles PUT /challenges/:id/progress
func UpdateChallengeProgress(c *gin.Context) {
	userID := c.GetString("userId")
	challengeID := c.Param("id")

	var input updateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	challenge, err := services.UpdateProgress(userID, challengeID, input.Progress)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		logger.Error().Err(err).Str("challenge_id", challengeID).Msg("Failed to update progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge"})
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// ClaimChallengeReward handles POST /challenges/:id/reward
func ClaimChallengeReward(c *gin.Context) {
	userID := c.GetString("userId")
	challengeID := c.Param("id")

	result, err := services.ClaimReward(userID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			metrics.RewardClaims.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		case errors.Is(err, services.ErrNotCompleted):
			metrics.RewardClaims.WithLabelValues("not_completed").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge is not completed yet"})
		case errors.Is(err, services.ErrAlreadyClaimed):
			metrics.RewardClaims.WithLabelValues("already_claimed").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reward was already claimed"})
		default:
			metrics.RewardClaims.WithLabelValues("error").Inc()
			logger.Error().Err(err).Str("challenge_id", challengeID).Msg("Reward settlement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim reward"})
		}
		return
	}

	metrics.RewardClaims.WithLabelValues("settled").Inc()
	logger.Info().
		Str("user_id", userID).
		Str("challenge_id", challengeID).
		Int("reward", result.Reward).
		Msg("Reward settled")

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reward claimed",
		"reward":      result.Reward,
		"total_coins": result.TotalCoins,
	})
}

// InitChallenges handles POST /challenges/init
func InitChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	challenges, err := services.InitChallenges(userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyInitialized) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Challenges already exist for this user"})
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to initialize challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize challenges"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Default challenges created", "challenges": challenges})
}
