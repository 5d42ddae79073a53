package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/login", `{"email":"nobody@x.com","password":"whatever"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, config.MsgNoUserFound, env.Message)
}

func TestLogin_ArchivedUserLooksMissing(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.status = config.ArchivedFlag
	seedUser(t, db, opts)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, config.MsgNoUserFound, env.Message)
}

func TestLogin_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.status = config.InactiveFlag
	seedUser(t, db, opts)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, config.MsgInactiveUser, env.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, defaultActive())
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, config.MsgWrongEmailAndPassword, env.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	db := newTestDB(t)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Status)
}

func TestLogin_SingleActiveSession(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, defaultActive())
	r, tokenManager := newLoginRouter(t, db, &fakeSMS{})

	// simulate sessions left over from earlier logins
	_, err := tokenManager.IssueToken(user.ID)
	require.NoError(t, err)
	_, err = tokenManager.IssueToken(user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), activeTokenCount(t, db, user.ID))

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgLoginSuccessfully, env.Message)
	assert.Equal(t, "a@x.com", env.Data["user"])
	assert.NotEmpty(t, env.Data["token"])

	// exactly one active token, and it is the fresh one
	assert.Equal(t, int64(1), activeTokenCount(t, db, user.ID))
}

func TestLogin_TwoFactorIssuesCodeWithoutSession(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	opts.phone = "+15551234567"
	user := seedUser(t, db, opts)
	sms := &fakeSMS{}
	r, _ := newLoginRouter(t, db, sms)

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgVerificationCodeSent, env.Message)
	assert.Equal(t, "a@x.com", env.Data["user"])

	// no token in the response body and no session created
	assert.NotContains(t, env.Data, "token")
	assert.Equal(t, int64(0), activeTokenCount(t, db, user.ID))

	// a 4-digit code was stored and texted to the user's phone
	code := userCode(t, db, user.ID)
	assert.Len(t, code.Code, 4)
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+15551234567", sms.to[0])
	assert.Equal(t, config.SMSMessage+code.Code, sms.sent[0])
}

func TestLogin_TwoFactorOverwritesPreviousCode(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	opts.phone = "+15551234567"
	user := seedUser(t, db, opts)
	require.NoError(t, db.Create(&models.UserCode{UserID: user.ID, Code: "0000"}).Error)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, _ := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.UserCode{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "a new code must overwrite, not accumulate")
	assert.NotEqual(t, "0000", userCode(t, db, user.ID).Code)
}

func TestLogin_SMSFailureIsInternalError(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	opts.phone = "+15551234567"
	seedUser(t, db, opts)
	r, _ := newLoginRouter(t, db, &fakeSMS{err: fmt.Errorf("provider down")})

	w, env := postJSON(t, r, "/login", `{"email":"a@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, config.MsgInternalServerError, env.Message)
}

func TestVerifyOtp_Mismatch(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	user := seedUser(t, db, opts)
	require.NoError(t, db.Create(&models.UserCode{UserID: user.ID, Code: "1234"}).Error)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/verify-otp", `{"email":"a@x.com","code":"9999"}`)

	// historical decoupling: logical failure, but envelope status stays true
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgOtpDoesNotMatch, env.Message)
	assert.Equal(t, int64(0), activeTokenCount(t, db, user.ID))
}

func TestVerifyOtp_NoCodeOnFile(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, defaultActive())
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/verify-otp", `{"email":"a@x.com","code":"1234"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgOtpDoesNotMatch, env.Message)
}

func TestVerifyOtp_Match(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	user := seedUser(t, db, opts)
	require.NoError(t, db.Create(&models.UserCode{UserID: user.ID, Code: "1234"}).Error)
	r, tokenManager := newLoginRouter(t, db, &fakeSMS{})

	// sessions from other devices must die on verification
	_, err := tokenManager.IssueToken(user.ID)
	require.NoError(t, err)

	w, env := postJSON(t, r, "/verify-otp", `{"email":"a@x.com","code":"1234"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgLoginSuccessfully, env.Message)
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, int64(1), activeTokenCount(t, db, user.ID))
}

func TestVerifyOtp_OldCodeStillVerifies(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	user := seedUser(t, db, opts)
	code := models.UserCode{UserID: user.ID, Code: "1234"}
	require.NoError(t, db.Create(&code).Error)
	// backdate by an hour: 2FA codes carry no expiry, unlike reset tokens
	require.NoError(t, db.Model(&code).UpdateColumns(map[string]interface{}{
		"created_at": time.Now().Add(-time.Hour),
		"updated_at": time.Now().Add(-time.Hour),
	}).Error)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/verify-otp", `{"email":"a@x.com","code":"1234"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MsgLoginSuccessfully, env.Message)
}

func TestVerifyOtp_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.status = config.InactiveFlag
	seedUser(t, db, opts)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/verify-otp", `{"email":"a@x.com","code":"1234"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, config.MsgInactiveUser, env.Message)
}

func TestResendOtp_RegeneratesAndSends(t *testing.T) {
	db := newTestDB(t)
	opts := defaultActive()
	opts.twoFactor = config.TwoFAEnableFlag
	opts.phone = "+15551234567"
	user := seedUser(t, db, opts)
	require.NoError(t, db.Create(&models.UserCode{UserID: user.ID, Code: "1234"}).Error)
	sms := &fakeSMS{}
	r, _ := newLoginRouter(t, db, sms)

	w, env := postJSON(t, r, "/resend-otp", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgVerificationCodeSent, env.Message)
	require.Len(t, sms.sent, 1)
	assert.Equal(t, config.SMSMessage+userCode(t, db, user.ID).Code, sms.sent[0])
}

func TestResendOtp_TwoFactorDisabled(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, defaultActive())
	sms := &fakeSMS{}
	r, _ := newLoginRouter(t, db, sms)

	w, env := postJSON(t, r, "/resend-otp", `{"email":"a@x.com"}`)

	// same decoupling as a code mismatch: status true at a 4xx code
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, config.MsgTwoFADisabled, env.Message)
	assert.Empty(t, sms.sent)
}

func TestResendOtp_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	r, _ := newLoginRouter(t, db, &fakeSMS{})

	w, env := postJSON(t, r, "/resend-otp", `{"email":"nobody@x.com"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, config.MsgNoUserFound, env.Message)
}
