package domain

import "context"

// AuthService performs account operations against the API
type AuthService interface {
	SignIn(ctx context.Context, creds Credentials) (*User, error)
	SignOut(ctx context.Context) error
	SignUp(ctx context.Context, creds Credentials) (*User, error)
	FetchUser(ctx context.Context) (*User, error)
}

// EpisodeRepository loads episode descriptors
type EpisodeRepository interface {
	FetchEpisode(ctx context.Context, id string) (*Episode, error)
}

// SessionStore persists session state between runs, keyed by API base URL
type SessionStore interface {
	SaveUser(baseURL string, user User) error
	LoadUser(baseURL string) (*User, bool)
	SaveCookies(baseURL string, cookies []Cookie) error
	LoadCookies(baseURL string) []Cookie
	Clear(baseURL string) error
}

// Cookie is the persisted form of a session cookie
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	Expires  int64
	Secure   bool
	HTTPOnly bool
}

// PositionStore remembers where playback of an episode stopped
type PositionStore interface {
	SavePosition(baseURL, episodeID string, seconds float64) error
	LoadPosition(baseURL, episodeID string) (float64, bool)
}
