package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"Mumei/pkg/context"
	"Mumei/pkg/jwt"
	"Mumei/pkg/response"
)

// Auth 强制鉴权，解析 Bearer token 并把用户身份放进请求上下文
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}

		// 快过期的 token 顺手续一张，前端无感换签
		if time.Until(claims.ExpiresAt.Time) < time.Minute {
			newToken, err := jwt.GenerateToken(
				secret,
				claims.UserID,
				claims.ScreenName,
				claims.Moderator,
				"access",
				time.Hour,
			)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxModerator, claims.Moderator)
		c.Next()
	}
}

// OptionalAuth 匿名可过，带了合法 token 就注入身份(用于标注浏览者自己的投票)
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			c.Next()
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxModerator, claims.Moderator)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
		return nil, false
	}

	claims, err := jwt.ParseToken(secret, "access", parts[1])
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	return claims, true
}
