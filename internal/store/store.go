package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketUsers     = []byte("users")
	bucketCookies   = []byte("cookies")
	bucketPositions = []byte("positions")
)

// SessionStore implements domain.SessionStore using BoltDB. Every key is
// namespaced by a hash of the API base URL so sessions for different servers
// never mix.
type SessionStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewSessionStore opens (or creates) the store under dir. An empty dir gives
// a memory-only store.
func NewSessionStore(dir string) (*SessionStore, error) {
	if dir == "" {
		return &SessionStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketUsers, bucketCookies, bucketPositions} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashBaseURL(baseURL string) string {
	normalized := strings.TrimRight(strings.ToLower(baseURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SessionStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SessionStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *SessionStore) deletePrefix(bucket []byte, prefix string) error {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		var keys [][]byte
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Users ===

func (s *SessionStore) SaveUser(baseURL string, user domain.User) error {
	return s.set(bucketUsers, hashBaseURL(baseURL), user)
}

func (s *SessionStore) LoadUser(baseURL string) (*domain.User, bool) {
	var user domain.User
	if !s.get(bucketUsers, hashBaseURL(baseURL), &user) {
		return nil, false
	}
	return &user, true
}

// === Cookies ===

func (s *SessionStore) SaveCookies(baseURL string, cookies []domain.Cookie) error {
	return s.set(bucketCookies, hashBaseURL(baseURL), cookies)
}

// LoadCookies returns the stored cookies that have not expired
func (s *SessionStore) LoadCookies(baseURL string) []domain.Cookie {
	var cookies []domain.Cookie
	if !s.get(bucketCookies, hashBaseURL(baseURL), &cookies) {
		return nil
	}
	now := time.Now().Unix()
	live := cookies[:0]
	for _, c := range cookies {
		if c.Expires == 0 || c.Expires > now {
			live = append(live, c)
		}
	}
	return live
}

// === Playback positions (key: {baseHash}:{episodeID}) ===

// SavePosition records where playback of an episode stopped, in seconds
func (s *SessionStore) SavePosition(baseURL, episodeID string, seconds float64) error {
	return s.set(bucketPositions, hashBaseURL(baseURL)+":"+episodeID, seconds)
}

func (s *SessionStore) LoadPosition(baseURL, episodeID string) (float64, bool) {
	var seconds float64
	ok := s.get(bucketPositions, hashBaseURL(baseURL)+":"+episodeID, &seconds)
	return seconds, ok
}

// === Invalidation ===

// Clear removes the user, cookies and positions stored for baseURL
func (s *SessionStore) Clear(baseURL string) error {
	key := hashBaseURL(baseURL)
	for _, bucket := range [][]byte{bucketUsers, bucketCookies} {
		if err := s.deletePrefix(bucket, key); err != nil {
			return err
		}
	}
	return s.deletePrefix(bucketPositions, key+":")
}
