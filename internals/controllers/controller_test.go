package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- helpers ---

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserCode{},
		&models.PasswordReset{},
		&models.AccessToken{},
	))
	return db
}

// testHasher uses the minimum bcrypt cost to keep the suite fast.
func testHasher() utils.Hasher {
	return &utils.BcryptHasher{Cost: bcrypt.MinCost}
}

type seedOpts struct {
	email     string
	password  string
	status    int
	twoFactor int
	phone     string
}

func seedUser(t *testing.T, db *gorm.DB, opts seedOpts) *models.User {
	t.Helper()
	hash, err := testHasher().Hash(opts.password)
	require.NoError(t, err)
	user := models.User{
		Email:           opts.email,
		PhoneNumber:     opts.phone,
		Password:        hash,
		TwoFactorStatus: opts.twoFactor,
		Status:          opts.status,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

type fakeSMS struct {
	sent []string // recorded message texts
	to   []string
	err  error
}

func (f *fakeSMS) SendSMS(to string, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, text)
	return nil
}

type fakeMail struct {
	to     []string
	tokens []string
	err    error
}

func (f *fakeMail) SendPasswordResetMail(toEmail string, token string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, toEmail)
	f.tokens = append(f.tokens, token)
	return nil
}

type envelope struct {
	Status  bool           `json:"status"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
}

func postJSON(t *testing.T, r *gin.Engine, path string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func activeTokenCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AccessToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Count(&n).Error)
	return n
}

func resetRowCount(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Unscoped().Model(&models.PasswordReset{}).
		Where("email = ?", email).
		Count(&n).Error)
	return n
}

func newLoginRouter(t *testing.T, db *gorm.DB, sms utils.SMSSender) (*gin.Engine, *utils.TokenManager) {
	t.Helper()
	tokenManager := utils.NewTokenManager(db, "test-secret", 900)
	ctrl := NewLoginController(db, testHasher(), sms, tokenManager)

	r := gin.New()
	r.POST("/login", ctrl.Login)
	r.POST("/verify-otp", ctrl.VerifyOtp)
	r.POST("/resend-otp", ctrl.ResendOtp)
	return r, tokenManager
}

func newPasswordRouter(t *testing.T, db *gorm.DB, mail utils.MailSender) *gin.Engine {
	t.Helper()
	ctrl := NewPasswordController(db, testHasher(), mail)

	r := gin.New()
	r.POST("/forgot-password", ctrl.ForgotPassword)
	r.POST("/submit-otp", ctrl.SubmitOtp)
	r.POST("/reset-password", ctrl.ResetPassword)
	return r
}

func userCode(t *testing.T, db *gorm.DB, userID uint) *models.UserCode {
	t.Helper()
	var code models.UserCode
	require.NoError(t, db.Where("user_id = ?", userID).First(&code).Error)
	return &code
}

func defaultActive() seedOpts {
	return seedOpts{
		email:     "a@x.com",
		password:  "secret123",
		status:    config.ActiveFlag,
		twoFactor: config.TwoFADisableFlag,
	}
}
