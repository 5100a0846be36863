package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal in-memory version of the account API
type fakeAPI struct {
	users    map[string]string // email -> password
	sessions map[string]string // cookie value -> email
	requests []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:    map[string]string{"alice@example.com": "hunter2"},
		sessions: map[string]string{},
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	writeUser := func(w http.ResponseWriter, email string) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "u-" + email, "email": email, "name": "Alice"})
	}

	mux.HandleFunc("POST /api/signIn", func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if pw, ok := f.users[body.Email]; !ok || pw != body.Password {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		token := "session-" + body.Email
		f.sessions[token] = body.Email
		http.SetCookie(w, &http.Cookie{Name: "session", Value: token, Path: "/"})
		writeUser(w, body.Email)
	})

	mux.HandleFunc("POST /api/signUp", func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if _, exists := f.users[body.Email]; exists {
			http.Error(w, "already registered", http.StatusConflict)
			return
		}
		f.users[body.Email] = body.Password
		token := "session-" + body.Email
		f.sessions[token] = body.Email
		http.SetCookie(w, &http.Cookie{Name: "session", Value: token, Path: "/"})
		writeUser(w, body.Email)
	})

	mux.HandleFunc("POST /api/signOut", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			delete(f.sessions, c.Value)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		email, ok := f.sessions[c.Value]
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeUser(w, email)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		mux.ServeHTTP(w, r)
	})
}

func newTestTransport(t *testing.T, handler http.Handler, opts ...Option) *Transport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := ResolveBaseURL(srv.URL, DefaultBasePath)
	require.NoError(t, err)

	tr, err := NewTransport(base, opts...)
	require.NoError(t, err)
	return tr
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		base   string
		want   string
	}{
		{"default path", "http://localhost:8000", "", "http://localhost:8000/api"},
		{"relative path", "http://localhost:8000", "/v2", "http://localhost:8000/v2"},
		{"absolute base wins", "http://localhost:8000", "https://api.example.com/api", "https://api.example.com/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBaseURL(tt.origin, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ResolveBaseURL("not a url", "/api")
	assert.Error(t, err)
}

func TestTransportEndpoint(t *testing.T) {
	base, err := url.Parse("http://example.com/api/")
	require.NoError(t, err)
	tr, err := NewTransport(base)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/api/users/me", tr.endpoint("/users/me"))
	assert.Equal(t, "http://example.com/api", tr.BaseURL())
}

func TestTransportRaisesOnNonSuccess(t *testing.T) {
	tr := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := tr.Do(context.Background(), http.MethodGet, "/anything", nil)
	require.Error(t, err)

	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.False(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestTransportServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := ResolveBaseURL(srv.URL, DefaultBasePath)
	require.NoError(t, err)
	srv.Close()

	tr, err := NewTransport(base)
	require.NoError(t, err)

	_, err = tr.Do(context.Background(), http.MethodGet, "/users/me", nil)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestTransportSetsRequestHeaders(t *testing.T) {
	var got http.Header
	tr := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))

	_, err := tr.Do(context.Background(), http.MethodPost, "/echo", map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-Id"))
}

type countingPlugin struct {
	acquired int
	released int
	err      error
}

func (p *countingPlugin) Name() string { return "counting" }

func (p *countingPlugin) Acquire(ctx context.Context, req *http.Request) (func(), error) {
	if p.err != nil {
		return nil, p.err
	}
	p.acquired++
	return func() { p.released++ }, nil
}

func TestTransportRunsPlugins(t *testing.T) {
	plugin := &countingPlugin{}
	tr := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), WithPlugins(plugin))

	_, err := tr.Do(context.Background(), http.MethodGet, "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, plugin.acquired)
	assert.Equal(t, 1, plugin.released)
}

func TestTransportPluginRejection(t *testing.T) {
	hit := false
	plugin := &countingPlugin{err: errors.New("queue full")}
	tr := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}), WithPlugins(plugin))

	_, err := tr.Do(context.Background(), http.MethodGet, "/x", nil)
	require.Error(t, err)
	assert.False(t, hit, "request must not be sent when a plugin rejects it")
}
