package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/contextutil"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errTokenInvalid = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	errTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// abortWithAppError writes the error envelope and stops the chain.
func abortWithAppError(c *gin.Context, appErr *apperror.AppError, details any) {
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
	c.Abort()
}

// AuthMiddleware resolves the acting identity from a bearer token (cookie
// fallback) and threads it through both the gin context and the request
// context. Handlers never read auth state from anywhere else.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithAppError(c, apperror.ErrUnauthorized, nil)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			appErr := errTokenInvalid
			if err != nil && strings.Contains(err.Error(), "expired") {
				appErr = errTokenExpired
			}
			abortWithAppError(c, appErr, nil)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithAppError(c, errTokenInvalid, nil)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWithAppError(c, errTokenInvalid, nil)
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)

		ctx := contextutil.WithActor(c.Request.Context(), contextutil.Actor{
			ID:   userID,
			Role: role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
