package config

// User status values stored in users.status
// 0:Inactive | 1:Active | 2:Archived
const (
	InactiveFlag = 0
	ActiveFlag   = 1
	ArchivedFlag = 2
)

// Two-factor checker values stored in users.two_factor_status
// 0:Disable | 1:Enable
const (
	TwoFADisableFlag = 0
	TwoFAEnableFlag  = 1
)

// SMSMessage is the text prefix the 4-digit code is appended to
const SMSMessage = "Your two factor authentication code is : "

// ResetTokenLength is the length of the random password-reset token
const ResetTokenLength = 60

// ResetTokenValidMinutes is the window within which a password-reset
// token can be verified or consumed
const ResetTokenValidMinutes = 5
