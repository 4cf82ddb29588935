package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
)

const sessionCookie = "admin_session"

type contextKey string

const consoleKey contextKey = "console"

var errNoSession = errors.New("no admin session")

type Middleware struct {
	jwtSecret    []byte
	sessions     *services.Sessions
	isProduction bool
}

func NewMiddleware(cfg *config.Config, sessions *services.Sessions) *Middleware {
	return &Middleware{
		jwtSecret:    []byte(cfg.JWTSecret),
		sessions:     sessions,
		isProduction: cfg.IsProduction(),
	}
}

// issueToken signs the console id. The token carries no expiry: the session
// lasts as long as the browser keeps the cookie.
func (m *Middleware) issueToken(consoleID string) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:  consoleID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.jwtSecret)
}

func (m *Middleware) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   m.isProduction,
		SameSite: http.SameSiteStrictMode,
	})
}

// consoleFromRequest resolves the console named by the session cookie.
func (m *Middleware) consoleFromRequest(r *http.Request) (*services.Console, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, errNoSession
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", errNoSession)
	}

	console, ok := m.sessions.Get(claims.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: unknown console", errNoSession)
	}
	return console, nil
}

// AdminMiddleware admits requests whose session console has been unlocked.
func (m *Middleware) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		console, err := m.consoleFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !console.Unlocked() {
			writeError(w, http.StatusUnauthorized, domain.ErrLocked.Error())
			return
		}

		ctx := context.WithValue(r.Context(), consoleKey, console)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func consoleFrom(ctx context.Context) *services.Console {
	c, _ := ctx.Value(consoleKey).(*services.Console)
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the Flusher underneath.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
