package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func newGuardedRouter(t *testing.T, guard gin.HandlerFunc) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlerRan := false
	r.GET("/protected", guard, func(c *gin.Context) {
		handlerRan = true
		u, ok := CurrentUser(c)
		if !ok || u == nil {
			t.Error("expected guard to store the resolved user")
		}
		c.Status(http.StatusNoContent)
	})
	return r, &handlerRan
}

func TestBearerGuard_ValidToken(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")
	tokens := newTestTokens(t)

	signed, err := tokens.Issue(seeded.ID.String(), seeded.Username)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r, handlerRan := newGuardedRouter(t, BearerGuard(NewBearerStrategy(tokens, directory)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d (%s)", w.Code, w.Body.String())
	}
	if !*handlerRan {
		t.Error("expected handler to run behind a satisfied guard")
	}
}

func TestBearerGuard_AbortsBeforeHandler(t *testing.T) {
	directory, _ := newTestDirectory(t)
	tokens := newTestTokens(t)

	r, handlerRan := newGuardedRouter(t, BearerGuard(NewBearerStrategy(tokens, directory)))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			*handlerRan = false
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
			if *handlerRan {
				t.Error("handler must not run when the guard rejects")
			}
		})
	}
}

func TestQueryGuard_ReadsAccessTokenParam(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")
	tokens := newTestTokens(t)

	signed, err := tokens.Issue(seeded.ID.String(), seeded.Username)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r, handlerRan := newGuardedRouter(t, QueryGuard(NewBearerQueryStrategy(tokens, directory)))

	req := httptest.NewRequest(http.MethodGet, "/protected?"+AccessTokenParam+"="+url.QueryEscape(signed), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d (%s)", w.Code, w.Body.String())
	}
	if !*handlerRan {
		t.Error("expected handler to run")
	}
}

func TestQueryGuard_IgnoresAuthorizationHeader(t *testing.T) {
	directory, db := newTestDirectory(t)
	seeded := seedLocalUser(t, db, "driver7", "hunter2hunter2")
	tokens := newTestTokens(t)

	signed, err := tokens.Issue(seeded.ID.String(), seeded.Username)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r, handlerRan := newGuardedRouter(t, QueryGuard(NewBearerQueryStrategy(tokens, directory)))

	// Token only in the header, not in the query parameter.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if *handlerRan {
		t.Error("handler must not run")
	}
}
