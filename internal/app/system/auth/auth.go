// internal/app/system/auth/auth.go

// Package auth carries the request identity. Sign-in and sign-up live in an
// external collaborator; its only contract with the core is Establish/Clear
// plus the session cookie. Handlers read the identity via CurrentUser and
// the Require* middleware.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
	userRoleKey  = "user_role"
)

// SessionUser is what the session caches and what gets injected into
// r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher loads fresh user data by id on each request, so role changes
// and disabled accounts take effect without waiting for the cookie to
// expire. A nil fetcher means the session values are trusted as-is.
type UserFetcher interface {
	Fetch(ctx context.Context, id string) (*SessionUser, error)
}

// SessionManager owns the cookie store and the identity middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager over a signed cookie store.
// An empty key generates a random one, which invalidates sessions on
// restart; acceptable in dev, logged loudly so it is never missed in prod.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	key := []byte(sessionKey)
	if sessionKey == "" {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("no session key configured; generated an ephemeral one (sessions reset on restart)")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the per-request user refresh.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// Establish writes the user into the session. Called by the external auth
// integration once it has verified an identity.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRoleKey] = u.Role
	return sess.Save(r, w)
}

// Clear drops the session.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the request user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the user into context if they are signed in.
// With a fetcher installed, the session only supplies the id and the user
// record is loaded fresh.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userNameKey),
				Email: getString(sess, userEmailKey),
				Role:  getString(sess, userRoleKey),
			}
			if sm.fetcher != nil {
				fresh, err := sm.fetcher.Fetch(r.Context(), u.ID)
				if err != nil || fresh == nil {
					// Stale or disabled account: treat as signed out.
					next.ServeHTTP(w, r)
					return
				}
				u = fresh
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures a user is present in context; otherwise 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Render(w, sm.log, apierr.Authorization("sign in required"))
			w.Header().Set("WWW-Authenticate", "Session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a route to the listed roles. Unknown role strings in
// the session fail closed.
func (sm *SessionManager) RequireRole(allowed ...roles.Role) func(http.Handler) http.Handler {
	set := make(map[roles.Role]struct{}, len(allowed))
	for _, rl := range allowed {
		set[rl] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Render(w, sm.log, apierr.Authorization("sign in required"))
				return
			}
			role, ok := roles.Parse(u.Role)
			if !ok {
				apierr.Render(w, sm.log, apierr.Authorization("unrecognized role"))
				return
			}
			if _, has := set[role]; !has {
				apierr.Render(w, sm.log, apierr.Authorization("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a user directly into the request context, bypassing
// the session middleware. Test use only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
