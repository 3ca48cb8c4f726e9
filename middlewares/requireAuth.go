package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth validates the Bearer token and puts the claims and the
// authenticated user id into the gin context. Everything behind it trusts
// that identity without re-checking credentials.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ctx.Set("user", claims)
		ctx.Set("userId", uint(userID))
		ctx.Next()
	}
}

// UserID pulls the authenticated user id set by RequireAuth.
func UserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get("userId")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// Claims pulls the verified token claims set by RequireAuth.
func Claims(ctx *gin.Context) (jwt.MapClaims, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := value.(jwt.MapClaims)
	return claims, ok
}
