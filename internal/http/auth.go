package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vibefy/internal/auth"
	"vibefy/internal/service"
)

const sessionKey = "session"

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": msgWelcome})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusOK, gin.H{"message": msgEmailInUse})
	case errors.Is(err, service.ErrUsernameInUse):
		c.JSON(http.StatusOK, gin.H{"message": msgUsernameInUse})
	case errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingField})
	case errors.Is(err, service.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgPasswordTooLong})
	default:
		h.log.Errorf("register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgDatabaseError})
	}
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgUserNotFound})
		return
	case errors.Is(err, service.ErrIncorrectPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgIncorrectPassword})
		return
	default:
		h.log.Errorf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgLoginFailed})
		return
	}

	token, _, err := h.sessions.Mint(user)
	if err != nil {
		h.log.Errorf("mint session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgLoginFailed})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": msgLoginSuccessful})
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}

// requireSession rejects requests without a valid session cookie and stores
// the recovered *auth.Session on the context.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNotLoggedIn})
			return
		}

		session, err := h.sessions.Validate(raw)
		if err != nil {
			h.setSessionCookie(c, "", -1)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNotLoggedIn})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.opts.CookieSecure, true)
}

func currentSession(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*auth.Session)
	return session
}
