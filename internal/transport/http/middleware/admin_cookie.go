package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/core/auth"
	"artisan-market-api/internal/domain"
	resp "artisan-market-api/internal/transport/http/response"
)

// AdminCookieName 管理后台会话 cookie
const AdminCookieName = "adminToken"

// AdminCookie 管理后台鉴权：cookie 里的 JWT 必须是 ADMIN。
// token 无效时顺手清掉 cookie，前端下次直接回登录页。
func AdminCookie(j *auth.JWTer) gin.HandlerFunc {
	reject := func(c *gin.Context, msg string) {
		c.SetCookie(AdminCookieName, "", -1, "/", "", false, true)
		c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msg))
	}
	return func(c *gin.Context) {
		tok, err := c.Cookie(AdminCookieName)
		if err != nil || tok == "" {
			reject(c, "missing session")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			reject(c, "invalid session")
			return
		}
		if claims.Role != domain.RoleAdmin {
			reject(c, "invalid session")
			return
		}
		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		// 透传给后续 handler，排查问题时好对人
		c.Writer.Header().Set("X-Admin-User-Id", claims.UserID)
		c.Writer.Header().Set("X-Admin-User-Email", claims.Email)
		c.Next()
	}
}
