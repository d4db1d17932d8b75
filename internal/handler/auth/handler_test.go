package auth

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-portal/internal/model"
	authService "github.com/jwalitptl/clinic-portal/internal/service/auth"
	pkgauth "github.com/jwalitptl/clinic-portal/pkg/auth"
	"github.com/jwalitptl/clinic-portal/pkg/security"
)

type fakeAdminRepo struct {
	admins map[string]*model.Admin
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	admin, ok := r.admins[username]
	if !ok {
		return nil, fmt.Errorf("failed to get admin: %w", sql.ErrNoRows)
	}
	return admin, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *pkgauth.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	sessions := pkgauth.NewSessionManager("test-secret", time.Hour)
	svc := authService.NewService(&fakeAdminRepo{admins: map[string]*model.Admin{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash},
	}}, hasher, sessions)

	h := NewHandler(svc, 3600)
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	h.RegisterProtectedRoutes(r.Group("/"))
	return r, sessions
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	r, sessions := newTestRouter(t)

	w := postForm(r, "/login", url.Values{
		"username": {"admin"},
		"password": {"s3cret-pass"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == pkgauth.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	claims, err := sessions.Verify(sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	r, _ := newTestRouter(t)

	wrongPass := postForm(r, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	unknownUser := postForm(r, "/login", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	})

	for _, w := range []*httptest.ResponseRecorder{wrongPass, unknownUser} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials.")
		for _, c := range w.Result().Cookies() {
			assert.NotEqual(t, pkgauth.CookieName, c.Name)
		}
	}
	// The two failures must be indistinguishable.
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestIndexRedirects(t *testing.T) {
	r, sessions := newTestRouter(t)

	// Unauthenticated visitors land on the login page.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Authenticated visitors go straight to the dashboard.
	token, err := sessions.Issue("admin")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: pkgauth.CookieName, Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	r, sessions := newTestRouter(t)

	token, err := sessions.Issue("admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: pkgauth.CookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == pkgauth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
