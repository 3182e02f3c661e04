package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/CHH01/runipet/internal/database"
	"github.com/CHH01/runipet/internal/models"
	"github.com/CHH01/runipet/internal/services"
)

func performAuth(handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", body)
	handler(c)
	return w
}

func TestRegister_And_Login(t *testing.T) {
	setupTestDB(t)

	w := performAuth(Register, map[string]string{
		"username": "hana",
		"password": "secret123!",
		"email":    "hana@example.com",
		"nickname": "Hana",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username
	w = performAuth(Register, map[string]string{
		"username": "hana",
		"password": "secret123!",
		"email":    "other@example.com",
		"nickname": "Other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login succeeds
	w = performAuth(Login, map[string]string{
		"username": "hana",
		"password": "secret123!",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		Coins       int    `json:"coins"`
		HasPet      bool   `json:"has_pet"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, 0, resp.Coins)
	assert.False(t, resp.HasPet)

	// Wrong password
	w = performAuth(Login, map[string]string{
		"username": "hana",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	setupTestDB(t)

	w := performAuth(Register, map[string]string{"username": "nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckUsername(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := performAuth(CheckUsername, map[string]string{"username": user.Username})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performAuth(CheckUsername, map[string]string{"username": "fresh_name"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestCheckEmail(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := performAuth(CheckEmail, map[string]string{"email": user.Email})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)

	w = performAuth(CheckEmail, map[string]string{"email": "fresh@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestFindID(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := performAuth(FindID, map[string]string{
		"email":    user.Email,
		"nickname": user.Nickname,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Username)

	w = performAuth(FindID, map[string]string{
		"email":    "nobody@example.com",
		"nickname": "nobody",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetPassword(t *testing.T) {
	setupTestDB(t)

	w := performAuth(Register, map[string]string{
		"username": "jisoo",
		"password": "oldpass123!",
		"email":    "jisoo@example.com",
		"nickname": "Jisoo",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performAuth(ResetPassword, map[string]string{
		"username":     "jisoo",
		"email":        "jisoo@example.com",
		"new_password": "newpass123!",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Old password rejected, new one accepted
	w = performAuth(Login, map[string]string{"username": "jisoo", "password": "oldpass123!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performAuth(Login, map[string]string{"username": "jisoo", "password": "newpass123!"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetPassword_NoMatch(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)

	w := performAuth(ResetPassword, map[string]string{
		"username":     user.Username,
		"email":        "mismatch@example.com",
		"new_password": "whatever1!",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t)
	friend := newTestUser(t)

	services.InitChallenges(user.ID)
	database.DB.Create(&models.Pet{ID: "pet1", UserID: user.ID, Name: "Runi"})
	database.DB.Create(&models.ExerciseRecord{ID: "ex1", UserID: user.ID, Type: "run", DistanceKm: 3.2})
	database.DB.Create(&models.SocialRelation{ID: "rel1", UserID: friend.ID, FriendID: user.ID, Status: models.RelationAccepted})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("DELETE", nil)
	c.Set("userId", user.ID)

	DeleteAccount(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	database.DB.Model(&models.Challenge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	database.DB.Model(&models.Pet{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	database.DB.Model(&models.ExerciseRecord{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// Friendships pointing at the user from either side are gone.
	database.DB.Model(&models.SocialRelation{}).
		Where("user_id = ? OR friend_id = ?", user.ID, user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// The other account is untouched.
	database.DB.Model(&models.User{}).Where("id = ?", friend.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
