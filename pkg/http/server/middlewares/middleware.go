package middlewares

import (
	"context"
	"errors"
	"execdash/pkg/constants/headers"
	"execdash/pkg/service/session"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/segmentio/ksuid"
	"net/http"
)

type contextKey int

var ErrNoSession = errors.New("no dashboard session, open the dashboard first")

const (
	RequestID contextKey = iota + 1
	SessionKey
)

type MiddlewareHandler interface {
	ContextMiddleware(next http.Handler) http.Handler
	SessionMiddleware(next http.Handler) http.Handler
}

type middlewareHandler struct {
	logger       hclog.Logger
	sessionStore session.Store
}

func NewMiddlewareHandler(logger hclog.Logger, sessionStore session.Store) MiddlewareHandler {
	return &middlewareHandler{
		logger:       logger.Named("middleware"),
		sessionStore: sessionStore,
	}
}

// ContextMiddleware tags every request with an id
func (m *middlewareHandler) ContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ksuid.New().String()
		ctx := context.WithValue(r.Context(), RequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mountsSession only a visit of the dashboard page may create a session
func mountsSession(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/"
}

// SessionMiddleware resolves the dashboard session of the browser. Visiting the dashboard mounts a new
// one when the cookie is missing or its session expired. Other requests without a session are turned away,
// form posts are sent back to the dashboard.
func (m *middlewareHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookieValue := ""
		if cookie, err := r.Cookie(headers.SessionCookieName); err == nil {
			cookieValue = cookie.Value
		}

		var dashboardSession *session.Session
		if mountsSession(r) {
			var created bool
			dashboardSession, created = m.sessionStore.GetOrCreate(cookieValue)
			if created {
				m.logger.Debug("issued session cookie", "session", dashboardSession.ID, "requestId", r.Context().Value(RequestID))
				http.SetCookie(w, &http.Cookie{
					Name:     headers.SessionCookieName,
					Value:    dashboardSession.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
		} else {
			var ok bool
			dashboardSession, ok = m.sessionStore.Get(cookieValue)
			if !ok {
				m.logger.Debug("no session for request", "path", r.URL.Path, "requestId", r.Context().Value(RequestID))
				if r.Method == http.MethodGet {
					utils.SendHTTPError(w, utils.NewHTTPError(http.StatusNotFound, ErrNoSession))
					return
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}

		ctx := context.WithValue(r.Context(), SessionKey, dashboardSession)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromRequest returns the session attached by SessionMiddleware
func SessionFromRequest(r *http.Request) (*session.Session, *utils.HTTPError) {
	dashboardSession, ok := r.Context().Value(SessionKey).(*session.Session)
	if !ok || dashboardSession == nil {
		return nil, utils.NewHTTPError(http.StatusInternalServerError, ErrNoSession)
	}
	return dashboardSession, nil
}
