package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samvriksha/samvriksha-api/config"
	"github.com/samvriksha/samvriksha-api/middlewares"
	"github.com/samvriksha/samvriksha-api/models"
	"github.com/samvriksha/samvriksha-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const authTestSecret = "auth-test-secret"

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newAuthTestDB(t)
	mailer := utils.NewMailer(utils.MailerConfig{})
	auth := NewAuthController(db, mailer, config.Config{
		JWTSecret:   authTestSecret,
		FrontendURL: "http://localhost:5173",
	})

	router := gin.New()
	router.POST("/auth/reset-password/:resetToken", auth.ResetPassword)

	protected := router.Group("/", middlewares.RequireAuth(authTestSecret))
	protected.GET("/me", auth.GetProfile)
	protected.PUT("/update-profile", auth.UpdateProfile)
	protected.PUT("/change-password", auth.ChangePassword)

	return router, db
}

func seedVerifiedUser(t *testing.T, db *gorm.DB, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	require.NoError(t, err)

	user := models.User{
		FirstName: "Asha",
		LastName:  "Menon",
		Email:     "asha@example.com",
		Password:  string(hash),
		ContactNo: "9876543210",
		Address:   "12 MG Road, Kochi",
		Pincode:   "682016",
		Role:      "user",
		Verified:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func bearerToken(t *testing.T, userID uint) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(authTestSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func authedRequest(method, target string, body any, authorization string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func TestGetProfile(t *testing.T) {
	router, db := newAuthTestRouter(t)
	user := seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/me", nil, bearerToken(t, user.ID)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User struct {
			FirstName string `json:"firstName"`
			Email     string `json:"email"`
			Password  string `json:"password"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Asha", body.User.FirstName)
	assert.Equal(t, "asha@example.com", body.User.Email)
	assert.Empty(t, body.User.Password)
}

func TestGetProfileRequiresToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/me", nil, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	router, db := newAuthTestRouter(t)
	user := seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/update-profile", models.UpdateProfileInput{
		FirstName: "Asha",
		LastName:  "Nair",
		ContactNo: "9000000000",
		Address:   "4 Beach Road, Varkala",
		Pincode:   "695141",
	}, bearerToken(t, user.ID)))

	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Equal(t, "Nair", saved.LastName)
	assert.Equal(t, "9000000000", saved.ContactNo)
	assert.Equal(t, "4 Beach Road, Varkala", saved.Address)
	assert.Equal(t, "695141", saved.Pincode)
}

func TestUpdateProfileRejectsPartialBody(t *testing.T) {
	router, db := newAuthTestRouter(t)
	user := seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/update-profile",
		gin.H{"firstName": "Asha"}, bearerToken(t, user.ID)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	router, db := newAuthTestRouter(t)
	user := seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/change-password", models.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "brand-new-password",
	}, bearerToken(t, user.ID)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgIncorrectPassword)

	// The stored hash must still match the old password.
	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("old-password")))
}

func TestChangePassword(t *testing.T) {
	router, db := newAuthTestRouter(t)
	user := seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/change-password", models.ChangePasswordInput{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	}, bearerToken(t, user.ID)))

	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("brand-new-password")))
}

func TestResetPasswordUnknownToken(t *testing.T) {
	router, db := newAuthTestRouter(t)
	seedVerifiedUser(t, db, "old-password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/auth/reset-password/no-such-token",
		gin.H{"password": "brand-new-password"}, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidResetLink)
}
