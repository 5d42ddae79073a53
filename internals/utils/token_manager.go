package utils

import (
	"time"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenManager mints and revokes the bearer credentials. Each issued
// token is a signed JWT whose jti indexes an access_tokens row; the row
// is the source of truth for revocation, so revoking is a single column
// flip and never needs the token string itself.
type TokenManager struct {
	// DB is the database connection used for storing token records
	DB *gorm.DB
	// JWTSecret is the secret key used for signing tokens
	JWTSecret string
	// MaxAge is the token lifetime in seconds
	MaxAge int
}

// NewTokenManager initializes and returns a new TokenManager instance
func NewTokenManager(db *gorm.DB, jwtSecret string, maxAge int) *TokenManager {
	return &TokenManager{
		DB:        db,
		JWTSecret: jwtSecret,
		MaxAge:    maxAge,
	}
}

// IssueToken creates a signed token for the user and records it as the
// active credential. Callers enforcing single-session semantics must
// call RevokeAllTokens first; the two steps are sequential, not atomic.
func (tm *TokenManager) IssueToken(userID uint) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(time.Duration(tm.MaxAge) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(userID),
		"jti": tokenID,
		"exp": expiresAt.Unix(),
	})

	tokenStr, err := token.SignedString([]byte(tm.JWTSecret))
	if err != nil {
		return "", err
	}

	record := models.AccessToken{
		UserID:    userID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}
	if err := tm.DB.Create(&record).Error; err != nil {
		return "", err
	}

	return tokenStr, nil
}

// RevokeAllTokens revokes every active credential the user holds.
func (tm *TokenManager) RevokeAllTokens(userID uint) error {
	return tm.DB.Model(&models.AccessToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// RevokeToken revokes the single credential identified by its jti.
func (tm *TokenManager) RevokeToken(tokenID string) error {
	return tm.DB.Model(&models.AccessToken{}).
		Where("token_id = ?", tokenID).
		Update("revoked", true).Error
}
