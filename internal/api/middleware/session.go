package middleware

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/consts"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

var cookieOptions = sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}

// SessionMiddleware 基于加密 cookie 的 session
func SessionMiddleware(cfg config.ServerConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieOptions.Domain = cfg.CookieDomain
	cookieOptions.Secure = cfg.SecureCookie
	store.Options(cookieOptions)
	return sessions.Sessions(cfg.SessionName, store)
}

// LoginAs 写入 session 与 remember_token cookie
func LoginAs(c *gin.Context, userID uint64, rememberToken string) error {
	session := sessions.Default(c)
	session.Set(consts.SessionUserKey, userID)
	if err := session.Save(); err != nil {
		return err
	}
	c.SetSameSite(cookieOptions.SameSite)
	c.SetCookie(consts.RememberCookieName, rememberToken, consts.RememberCookieAge, "/", cookieOptions.Domain, cookieOptions.Secure, true)
	return nil
}

// Logout 清空 session 与 remember_token cookie
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	ClearRememberCookie(c)
	return session.Save()
}

func ClearRememberCookie(c *gin.Context) {
	c.SetCookie(consts.RememberCookieName, "", -1, "/", cookieOptions.Domain, cookieOptions.Secure, true)
}
