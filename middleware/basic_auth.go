package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/models"
	"gorm.io/gorm"
)

type contextKey string

const userContextKey contextKey = "user"

// BasicAuth guards every endpoint with one shared credential pair. A request
// without an Authorization header passes through as anonymous; a present but
// wrong credential is rejected. On success the same system User row is
// attached to the request context, created lazily on first use.
type BasicAuth struct {
	db       *gorm.DB
	log      *logger.Logger
	username string
	password string

	mu         sync.Mutex
	systemUser *models.User
}

func NewBasicAuth(db *gorm.DB, baseLog *logger.Logger, username, password string) *BasicAuth {
	return &BasicAuth{
		db:       db,
		log:      baseLog.With("middleware", "BasicAuth"),
		username: username,
		password: password,
	}
}

func (m *BasicAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Basic ") {
			// No credentials offered: anonymous path.
			next.ServeHTTP(w, r)
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len("Basic "):]))
		if err != nil {
			unauthorized(w, "Invalid Basic auth header.")
			return
		}
		username, password, ok := strings.Cut(string(decoded), ":")
		if !ok {
			unauthorized(w, "Invalid Basic auth header.")
			return
		}

		if m.username == "" || m.password == "" {
			unauthorized(w, "Server misconfiguration: API_BASIC_AUTH_USERNAME and API_BASIC_AUTH_PASSWORD must be set.")
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
		if !userOK || !passOK {
			unauthorized(w, "Invalid username or password.")
			return
		}

		user, err := m.resolveSystemUser(r.Context())
		if err != nil {
			m.log.Error("failed to resolve system user", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not resolve system user."})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSystemUser gets or creates the single row behind the shared
// credential, then reuses it for the rest of the process lifetime.
func (m *BasicAuth) resolveSystemUser(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.systemUser != nil {
		return m.systemUser, nil
	}

	var user models.User
	err := m.db.WithContext(ctx).Where("username = ?", m.username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Username: m.username}
		if err := m.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		m.log.Info("created system user", "username", m.username)
	} else if err != nil {
		return nil, err
	}

	m.systemUser = &user
	return m.systemUser, nil
}

// CurrentUser returns the authenticated identity, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
