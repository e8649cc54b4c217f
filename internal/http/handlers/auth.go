package handlers

import (
	"net/http"

	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /login
func (h Handler) LoginPage(c *gin.Context) {
	if !h.Env.AuthEnabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "login.tmpl", gin.H{"Title": "Sign in"})
}

// POST /login
func (h Handler) Login(c *gin.Context) {
	if !h.Env.AuthEnabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	var f loginForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/login", "auth", "login")
		return
	}

	svc := services.AuthService{
		Users:     repositories.UserRepository{DB: conn(c)},
		Secret:    []byte(h.Env.JWTSecret),
		RequestID: middleware.GetRequestID(c),
	}
	token, err := svc.Login(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		h.fail(c, err, "/login", "auth", "login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, int(services.TokenTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /logout
func (h Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	redirect(c, "/login", "Signed out")
}
