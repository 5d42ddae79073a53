package utils

import "github.com/gin-gonic/gin"

// APIResponse is the envelope every endpoint returns. Status is the
// logical outcome flag and is deliberately independent of the HTTP code:
// a handful of historical responses report status=true alongside a 4xx
// code (wrong OTP, 2FA disabled) and clients branch on that pairing.
type APIResponse struct {
	Status  bool   `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// SendResponse writes the envelope with the given HTTP code. A nil data
// value is rendered as an empty object, matching what clients expect.
func SendResponse(c *gin.Context, status bool, data any, message string, code int) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(code, APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
	})
}
