package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CHH01/runipet/internal/config"
	"github.com/CHH01/runipet/internal/database"
	"github.com/CHH01/runipet/internal/models"
	"github.com/CHH01/runipet/internal/services"
	"github.com/CHH01/runipet/pkg/utils"
)

// setupTestDB initializes an in-memory SQLite DB for handler tests.
func setupTestDB(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	database.DB = db
	if err := db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Pet{},
		&models.ExerciseRecord{},
		&models.SocialRelation{},
		&models.UserAchievement{},
		&models.UserItem{},
		&models.UserSettings{},
		&models.Inquiry{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func newTestUser(t *testing.T) models.User {
	user := models.User{
		ID:       utils.GenerateID(),
		Username: "runner_" + utils.GenerateID()[:8],
		Email:    utils.GenerateID()[:8] + "@example.com",
		Nickname: "runner",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func jsonRequest(method string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, "/uri", &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func intPtr(v int) *int { return &v }

func TestGetChallenges_Empty(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("GET", nil)
	c.Set("userId", user.ID)

	GetChallenges(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCreateChallenge_MissingFields(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", map[string]interface{}{"title": "Run 5km"})
	c.Set("userId", user.ID)

	CreateChallenge(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateChallenge_Success(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", map[string]interface{}{
		"title": "Run 5km", "goal": 5, "reward": 50,
	})
	c.Set("userId", user.ID)

	CreateChallenge(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	database.DB.Model(&models.Challenge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateChallengeProgress_NotFound(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("PUT", map[string]interface{}{"progress": 5})
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set("userId", user.ID)

	UpdateChallengeProgress(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateChallengeProgress_Success(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)
	challenge, _ := services.CreateChallenge(user.ID, services.CreateChallengeInput{Title: "Run 10km", Goal: 10})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("PUT", map[string]interface{}{"progress": 10})
	c.Params = gin.Params{{Key: "id", Value: challenge.ID}}
	c.Set("userId", user.ID)

	UpdateChallengeProgress(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":true`)
}

func TestClaimChallengeReward_Flow(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)
	challenge, _ := services.CreateChallenge(user.ID, services.CreateChallengeInput{Title: "First workout", Goal: 1, Reward: 100})

	claim := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest("POST", nil)
		c.Params = gin.Params{{Key: "id", Value: challenge.ID}}
		c.Set("userId", user.ID)
		ClaimChallengeReward(c)
		return w
	}

	// Not completed yet
	w := claim()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not completed")

	services.UpdateProgress(user.ID, challenge.ID, intPtr(1))

	// Settles
	w = claim()
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reward     int `json:"reward"`
		TotalCoins int `json:"total_coins"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Reward)
	assert.Equal(t, 100, resp.TotalCoins)

	// Second claim rejected, balance untouched
	w = claim()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already claimed")

	var owner models.User
	database.DB.First(&owner, "id = ?", user.ID)
	assert.Equal(t, 100, owner.Coins)
}

func TestClaimChallengeReward_NotFound(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set("userId", user.ID)

	ClaimChallengeReward(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitChallenges_Handler(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	run := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest("POST", nil)
		c.Set("userId", user.ID)
		InitChallenges(c)
		return w
	}

	w := run()
	assert.Equal(t, http.StatusCreated, w.Code)

	w = run()
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Challenge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 4, count)
}
