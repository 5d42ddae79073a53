package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginController drives the login, two-factor and logout flows. All
// collaborators are injected; any unexpected error from one of them is
// logged with the failing operation and collapsed to the 500 envelope.
type LoginController struct {
	DB           *gorm.DB
	Hasher       utils.Hasher
	SMS          utils.SMSSender
	TokenManager *utils.TokenManager
}

func NewLoginController(db *gorm.DB, hasher utils.Hasher, sms utils.SMSSender, tokenManager *utils.TokenManager) *LoginController {
	return &LoginController{
		DB:           db,
		Hasher:       hasher,
		SMS:          sms,
		TokenManager: tokenManager,
	}
}

type LoginReqBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPReqBody struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResendOTPReqBody struct {
	Email string `json:"email" binding:"required,email"`
}

// findUserByEmail looks a user up through the not-archived scope, so an
// archived account is indistinguishable from a missing one.
func (l *LoginController) findUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := l.DB.Scopes(models.NotArchived).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// issueTwoFactorCode overwrites the user's single live code. There is at
// most one user_codes row per user; reissuing replaces its value.
func (l *LoginController) issueTwoFactorCode(user *models.User) (*models.UserCode, error) {
	var userCode models.UserCode
	err := l.DB.Where(models.UserCode{UserID: user.ID}).
		Assign(models.UserCode{Code: utils.GenerateTwoFactorCode()}).
		FirstOrCreate(&userCode).Error
	if err != nil {
		return nil, err
	}
	return &userCode, nil
}

// establishSession revokes every active credential the user holds, then
// issues a fresh one. Sequential, not atomic: two concurrent logins for
// the same user can interleave here, which is accepted behavior.
func (l *LoginController) establishSession(user *models.User) (string, error) {
	if err := l.TokenManager.RevokeAllTokens(user.ID); err != nil {
		return "", err
	}
	return l.TokenManager.IssueToken(user.ID)
}

// Login checks credentials and either establishes a session or, for
// two-factor users, issues a code and stops short of a session.
func (l *LoginController) Login(c *gin.Context) {
	var body LoginReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendResponse(c, false, nil, config.MsgValidationError, http.StatusUnprocessableEntity)
		return
	}

	user, err := l.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgNoUserFound, http.StatusNotFound)
			return
		}
		slog.Error("LoginController.Login", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if user.Status == config.InactiveFlag {
		utils.SendResponse(c, false, nil, config.MsgInactiveUser, http.StatusForbidden)
		return
	}

	if !l.Hasher.Check(user.Password, body.Password) {
		utils.SendResponse(c, false, nil, config.MsgWrongEmailAndPassword, http.StatusUnauthorized)
		return
	}

	if user.TwoFactorStatus == config.TwoFAEnableFlag {
		userCode, err := l.issueTwoFactorCode(user)
		if err != nil {
			slog.Error("LoginController.Login", "error", err)
			utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if err := l.SMS.SendSMS(user.PhoneNumber, config.SMSMessage+userCode.Code); err != nil {
			slog.Error("LoginController.Login", "error", err)
			utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		// No session yet; the code never travels in the response
		utils.SendResponse(c, true, gin.H{"user": user.Email}, config.MsgVerificationCodeSent, http.StatusOK)
		return
	}

	token, err := l.establishSession(user)
	if err != nil {
		slog.Error("LoginController.Login", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.SendResponse(c, true, gin.H{"user": user.Email, "token": token}, config.MsgLoginSuccessfully, http.StatusOK)
}

// VerifyOtp completes a two-factor login. The stored code is matched on
// value alone, regardless of when it was issued; a miss is reported as
// status=true at HTTP 400, a pairing clients rely on.
func (l *LoginController) VerifyOtp(c *gin.Context) {
	var body VerifyOTPReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendResponse(c, false, nil, config.MsgValidationError, http.StatusUnprocessableEntity)
		return
	}

	user, err := l.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgNoUserFound, http.StatusNotFound)
			return
		}
		slog.Error("LoginController.VerifyOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if user.Status == config.InactiveFlag {
		utils.SendResponse(c, false, nil, config.MsgInactiveUser, http.StatusForbidden)
		return
	}

	var userCode models.UserCode
	err = l.DB.Where("user_id = ? AND code = ?", user.ID, body.Code).First(&userCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, true, nil, config.MsgOtpDoesNotMatch, http.StatusBadRequest)
			return
		}
		slog.Error("LoginController.VerifyOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	token, err := l.establishSession(user)
	if err != nil {
		slog.Error("LoginController.VerifyOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.SendResponse(c, true, gin.H{"user": user.Email, "token": token}, config.MsgLoginSuccessfully, http.StatusOK)
}

// ResendOtp reissues the two-factor code. For accounts without
// two-factor the outcome is status=true at HTTP 403, same decoupling as
// a code mismatch.
func (l *LoginController) ResendOtp(c *gin.Context) {
	var body ResendOTPReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendResponse(c, false, nil, config.MsgValidationError, http.StatusUnprocessableEntity)
		return
	}

	user, err := l.findUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendResponse(c, false, nil, config.MsgNoUserFound, http.StatusNotFound)
			return
		}
		slog.Error("LoginController.ResendOtp", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	if user.Status == config.InactiveFlag {
		utils.SendResponse(c, false, nil, config.MsgInactiveUser, http.StatusForbidden)
		return
	}

	if user.TwoFactorStatus == config.TwoFAEnableFlag {
		userCode, err := l.issueTwoFactorCode(user)
		if err != nil {
			slog.Error("LoginController.ResendOtp", "error", err)
			utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if err := l.SMS.SendSMS(user.PhoneNumber, config.SMSMessage+userCode.Code); err != nil {
			slog.Error("LoginController.ResendOtp", "error", err)
			utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		utils.SendResponse(c, true, gin.H{"user": user.Email}, config.MsgVerificationCodeSent, http.StatusOK)
		return
	}

	utils.SendResponse(c, true, nil, config.MsgTwoFADisabled, http.StatusForbidden)
}

// Logout revokes exactly the credential the caller presented. Other
// sessions the user may hold stay alive.
func (l *LoginController) Logout(c *gin.Context) {
	tokenID := c.GetString("tokenID")

	if err := l.TokenManager.RevokeToken(tokenID); err != nil {
		slog.Error("LoginController.Logout", "error", err)
		utils.SendResponse(c, false, nil, config.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.SendResponse(c, true, nil, config.MsgUserLogout, http.StatusOK)
}
