package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/CHH01/runipet/internal/database"
	"github.com/CHH01/runipet/internal/models"
	"github.com/CHH01/runipet/pkg/utils"
)

// Challenge lifecycle errors, mapped to response codes by the handlers.
var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrNotCompleted       = errors.New("challenge not completed yet")
	ErrAlreadyClaimed     = errors.New("reward already claimed")
	ErrAlreadyInitialized = errors.New("challenges already initialized")
	ErrInvalidChallenge   = errors.New("title and a positive goal are required")
)

// defaultChallenges are the four templates every new user starts with.
var defaultChallenges = []struct {
	Title       string
	Description string
	Goal        int
	Reward      int
}{
	{"First workout", "Start your first workout", 1, 100},
	{"Run 50km", "Reach 50km of accumulated distance", 50, 3000},
	{"Maintain 1 hour", "Keep a workout going for a full hour", 1, 500},
	{"10 workouts", "Complete 10 workouts", 10, 1000},
}

type CreateChallengeInput struct {
	Title       string
	Description string
	Goal        int
	Reward      int
}

type ClaimResult struct {
	Reward     int `json:"reward"`
	TotalCoins int `json:"total_coins"`
}

// ListChallenges returns every challenge owned by the user.
func ListChallenges(userID string) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

// CreateChallenge adds a custom challenge for the user.
func CreateChallenge(userID string, input CreateChallengeInput) (*models.Challenge, error) {
	if strings.TrimSpace(input.Title) == "" || input.Goal <= 0 || input.Reward < 0 {
		return nil, ErrInvalidChallenge
	}

	challenge := models.Challenge{
		ID:          utils.GenerateID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Goal:        input.Goal,
		Reward:      input.Reward,
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// InitChallenges bulk-creates the default challenge set for a fresh user.
// Either all four rows are persisted or none are.
func InitChallenges(userID string) ([]models.Challenge, error) {
	var created []models.Challenge

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Challenge{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInitialized
		}

		for _, tpl := range defaultChallenges {
			challenge := models.Challenge{
				ID:          utils.GenerateID(),
				UserID:      userID,
				Title:       tpl.Title,
				Description: tpl.Description,
				Goal:        tpl.Goal,
				Reward:      tpl.Reward,
			}
			if err := tx.Create(&challenge).Error; err != nil {
				return err
			}
			created = append(created, challenge)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProgress sets the challenge's progress and recomputes completion.
// A nil progress is a no-op update returning the current state.
//
// Progress may move backwards while the reward is unclaimed (data-entry
// corrections). Once the reward is claimed the challenge is settled:
// progress is clamped at the goal so completion never regresses on a
// paid challenge.
func UpdateProgress(userID, challengeID string, progress *int) (*models.Challenge, error) {
	var challenge models.Challenge

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", challengeID, userID).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		if progress == nil {
			return nil
		}

		newProgress := *progress
		if challenge.RewardClaimed && newProgress < challenge.Goal {
			newProgress = challenge.Goal
		}

		challenge.Progress = newProgress
		challenge.Completed = challenge.Progress >= challenge.Goal

		return tx.Model(&models.Challenge{}).
			Where("id = ? AND user_id = ?", challengeID, userID).
			Updates(map[string]interface{}{
				"progress":  challenge.Progress,
				"completed": challenge.Completed,
			}).Error
	})

	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ClaimReward settles a completed challenge: flips reward_claimed and
// credits the user's coin balance in one transaction. The conditional
// update on reward_claimed is an optimistic check that guarantees the
// reward is granted at most once even under concurrent claims.
func ClaimReward(userID, challengeID string) (*ClaimResult, error) {
	var result ClaimResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("id = ? AND user_id = ?", challengeID, userID).
			First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		if !challenge.Completed {
			return ErrNotCompleted
		}
		if challenge.RewardClaimed {
			return ErrAlreadyClaimed
		}

		// Compare-and-set: a concurrent claim that read the same
		// unclaimed row sees zero rows affected here and loses.
		res := tx.Model(&models.Challenge{}).
			Where("id = ? AND user_id = ? AND reward_claimed = ?", challengeID, userID, false).
			Update("reward_claimed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyClaimed
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("coins", gorm.Expr("coins + ?", challenge.Reward)).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("coins").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		result = ClaimResult{Reward: challenge.Reward, TotalCoins: user.Coins}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}
