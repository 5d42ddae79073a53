package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PasswordController drives the forgot-password and reset flows around
// the time-boxed password_resets rows.
type PasswordController struct {
	DB     *gorm.DB
	Hasher utils.Hasher
	Mail   utils.MailSender
}

func NewPasswordController(db *gorm.DB, hasher utils.Hasher, mail utils.MailSender) *PasswordController {
	return &PasswordController{
		DB:     db,
		Hasher: hasher,
		Mail:   mail,
	}
}

type ForgotPasswordReqBody struct {
	Email string `json:"email"`
}

type SubmitOTPReqBody struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ResetPasswordReqBody struct {
	Email                string `json:"email"`
	Otp                  string `json:"otp"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (p *PasswordController) findUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := p.DB.Scopes(models.NotArchived).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// findValidResetToken returns the most recently created reset row for
// the email whose creation time falls strictly within the last 5
// minutes. Rows outside the window are invisible here; multiple rows
// per email are expected and latest wins.
func (p *PasswordController) findValidResetToken(email string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	cutoff := time.Now().Add(-config.ResetTokenValidMinutes * time.Minute)
	err := p.DB.Where("email = ? AND created_at > ?", email, cutoff).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// purgeResetTokens hard-deletes every reset row for the email.
func (p *PasswordController) purgeResetTokens(email string) error {
	return p.DB.Unscoped().Where("email = ?", email).Delete(&models.PasswordReset{}).Error
}

// ForgotPassword generates a reset token and mails the reset link. Rows
// are append-only; earlier tokens for the same email are left in place
// and simply lose the latest-wins lookup.
func (p *PasswordController) ForgotPassword(c *gin.Context) {
	var body ForgotPasswordReqBody
	c.ShouldBindJSON(&body)

	if body.Email == "" {
		utils.SendResponse(c, false, nil, "The email field is required.", http.StatusUnprocessableEntity)
		return
	}

	user, err := p.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgInvalidUser, http.StatusBadRequest)
			return
		}
		slog.Error("PasswordController.ForgotPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	token := utils.GenerateResetToken(config.ResetTokenLength)

	reset := models.PasswordReset{
		Email: body.Email,
		Token: token,
	}
	if err := p.DB.Create(&reset).Error; err != nil {
		slog.Error("PasswordController.ForgotPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := p.Mail.SendPasswordResetMail(user.Email, token); err != nil {
		slog.Error("PasswordController.ForgotPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.SendResponse(c, true, nil, config.MsgResetOtpSent, http.StatusOK)
}

// SubmitOtp is a dry-run verification of the reset token: a match never
// consumes the row, so the subsequent reset call can use it. A window
// miss purges whatever stale rows remain for the email.
func (p *PasswordController) SubmitOtp(c *gin.Context) {
	var body SubmitOTPReqBody
	c.ShouldBindJSON(&body)

	if body.Email == "" {
		utils.SendResponse(c, false, nil, "The email field is required.", http.StatusUnprocessableEntity)
		return
	}
	if body.Otp == "" {
		utils.SendResponse(c, false, nil, "The otp field is required.", http.StatusUnprocessableEntity)
		return
	}

	_, err := p.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgUnauthorizeAction, http.StatusUnauthorized)
			return
		}
		slog.Error("PasswordController.SubmitOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	reset, err := p.findValidResetToken(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := p.purgeResetTokens(body.Email); err != nil {
				slog.Error("PasswordController.SubmitOtp", "error", err)
				utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
				return
			}
			utils.SendResponse(c, true, nil, config.MsgOtpDoesNotMatch, http.StatusBadRequest)
			return
		}
		slog.Error("PasswordController.SubmitOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if reset.Token != body.Otp {
		utils.SendResponse(c, true, nil, config.MsgOtpDoesNotMatch, http.StatusBadRequest)
		return
	}

	utils.SendResponse(c, true, nil, config.MsgOtpIsVerified, http.StatusOK)
}

// ResetPassword re-runs the window lookup, consumes the token on a match
// by deleting every reset row for the email, and replaces the password
// hash. A mismatched value leaves the row in place.
func (p *PasswordController) ResetPassword(c *gin.Context) {
	var body ResetPasswordReqBody
	c.ShouldBindJSON(&body)

	if body.Email == "" {
		utils.SendResponse(c, false, nil, "The email field is required.", http.StatusUnprocessableEntity)
		return
	}
	if body.Otp == "" {
		utils.SendResponse(c, false, nil, "The otp field is required.", http.StatusUnprocessableEntity)
		return
	}
	if body.Password == "" {
		utils.SendResponse(c, false, nil, "The password field is required.", http.StatusUnprocessableEntity)
		return
	}
	if body.PasswordConfirmation != body.Password {
		utils.SendResponse(c, false, nil, "The password confirmation and password must match.", http.StatusUnprocessableEntity)
		return
	}

	user, err := p.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgUnauthorizeAction, http.StatusUnauthorized)
			return
		}
		slog.Error("PasswordController.ResetPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	reset, err := p.findValidResetToken(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := p.purgeResetTokens(body.Email); err != nil {
				slog.Error("PasswordController.ResetPassword", "error", err)
				utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
				return
			}
			utils.SendResponse(c, true, nil, config.MsgOtpDoesNotMatch, http.StatusBadRequest)
			return
		}
		slog.Error("PasswordController.ResetPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if reset.Token != body.Otp {
		utils.SendResponse(c, true, nil, config.MsgOtpDoesNotMatch, http.StatusBadRequest)
		return
	}

	// Single-use consumption: every row for the email goes, so replaying
	// the same token fails the window lookup next time around
	if err := p.purgeResetTokens(body.Email); err != nil {
		slog.Error("PasswordController.ResetPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	hash, err := p.Hasher.Hash(body.Password)
	if err != nil {
		slog.Error("PasswordController.ResetPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := p.DB.Model(user).Update("password", hash).Error; err != nil {
		slog.Error("PasswordController.ResetPassword", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.SendResponse(c, true, nil, config.MsgPasswordUpdated, http.StatusOK)
}
