package middleware

import (
	"net/http"
	"strings"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/models"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type RequireAuthMiddleware struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewRequireAuthMiddleware(db *gorm.DB, jwtSecret string) *RequireAuthMiddleware {
	return &RequireAuthMiddleware{
		DB:        db,
		JWTSecret: jwtSecret,
	}
}

// RequireAuth gates protected routes on a bearer token. The signature
// check alone is not enough: the token's jti must still map to a
// non-revoked access_tokens row, which is what makes revocation
// immediate.
func (m *RequireAuthMiddleware) RequireAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	tokenID, ok := claims["jti"].(string)
	if !ok {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	var record models.AccessToken
	if err := m.DB.Where("token_id = ? AND revoked = ?", tokenID, false).First(&record).Error; err != nil {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	var user models.User
	if err := m.DB.Scopes(models.NotArchived).First(&user, uint(sub)).Error; err != nil {
		utils.SendResponse(c, false, nil, config.MsgNotAuthorized, http.StatusUnauthorized)
		c.Abort()
		return
	}

	c.Set("user", user)
	c.Set("tokenID", tokenID)
	c.Next()
}
