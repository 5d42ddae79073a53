package config

// User-facing messages. Clients display these verbatim, so changing a
// string here is a wire-contract change.
const (
	MsgNoUserFound           = "No User Found"
	MsgInactiveUser          = "Your account has been inactive, Please contact administrator to activate your account."
	MsgWrongEmailAndPassword = "We didn't recognise your details. Please check your email or password."
	MsgLoginSuccessfully     = "You are login successfully."
	MsgVerificationCodeSent  = "We've sent a verification code to the number associated with this account."
	MsgOtpDoesNotMatch       = "Invalid OTP value, Please try again"
	MsgOtpIsVerified         = "Your Otp is verified successfully."
	MsgTwoFADisabled         = "Sorry, two-factor authentication is disabled with this account."
	MsgUserLogout            = "You have been successfully logged out."
	MsgInvalidUser           = "Sorry, wrong email address. Please try again"
	MsgUnauthorizeAction     = "You are being logged out! Please login again."
	MsgNotAuthorized         = "You are not authorized to do this action."
	MsgPasswordUpdated       = "Your password has been updated successfully."
	MsgResetOtpSent          = "A password reset OTP has been sent to your email address"
	MsgInternalServerError   = "Internal Server Error."
	MsgValidationError       = "Validation error"
)
