package middleware

import (
	"errors"
	"net/http"
	"time"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ctxSessionID = "session_id"
	ctxSession   = "session"

	LoginPath = "/login"
)

var ErrInvalidSessionCookie = errors.New("invalid session cookie")

// SessionCookies issues and reads the signed cookie that carries the session
// id. The backend token itself never leaves the server.
type SessionCookies struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionCookies(name, secret string, ttl time.Duration, secure bool) *SessionCookies {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionCookies{name: name, secret: []byte(secret), ttl: ttl, secure: secure}
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Issue signs sid and sets it as the session cookie.
func (s *SessionCookies) Issue(c *gin.Context, sid string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, signed, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

func (s *SessionCookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}

// SessionID verifies the cookie value and returns the session id in it.
func (s *SessionCookies) SessionID(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionCookie
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrInvalidSessionCookie
	}
	return claims.ID, nil
}

// SessionContext resolves the cookie into an explicit session for the handlers.
// A missing or invalid cookie is an Absent session.
func SessionContext(cookies *SessionCookies, sessions usecase.ISessionUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := entities.AbsentSession()

		if raw, err := c.Cookie(cookies.name); err == nil && raw != "" {
			if sid, err := cookies.SessionID(raw); err == nil {
				c.Set(ctxSessionID, sid)
				resolved, err := sessions.Current(c.Request.Context(), sid)
				if err != nil {
					logger.FromContext(c.Request.Context()).Error().Err(err).Msg("[session][middleware] session lookup failed")
				} else {
					session = resolved
				}
			}
		}

		c.Set(ctxSession, session)
		c.Next()
	}
}

// RequireSession redirects to the login page when the session is Absent.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).Present() {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) entities.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(entities.Session); ok {
			return s
		}
	}
	return entities.AbsentSession()
}

func SessionIDFrom(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
