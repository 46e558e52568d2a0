// Package store persists the client's small local state as JSON files:
// the auth token and browse history under the user config dir, and API
// caches under the user cache dir.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"eventify-cli/model"
)

const (
	appDirName      = "eventify-cli"
	genreCacheTTL   = 24 * time.Hour
	maxRecentMovies = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentMovie is one entry of the recently viewed history, most recent first.
type RecentMovie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type movieHistory struct {
	Movies []RecentMovie `json:"movies"`
}

type tokenFile struct {
	AccessToken string `json:"access_token"`
}

type filtersFile struct {
	Query string `json:"query"`
}

// Tokens adapts the token file to the service client's TokenSource. It
// rereads the file on every call so a token written by a login in the same
// session (or cleared by a logout) is picked up immediately.
type Tokens struct{}

func (Tokens) Token() string {
	token, err := LoadToken()
	if err != nil {
		return ""
	}
	return token
}

// LoadToken returns the persisted access token, or "" when logged out.
func LoadToken() (string, error) {
	path, err := configPath("token.json")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var file tokenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", errors.New("invalid token file format")
	}
	return file.AccessToken, nil
}

// SaveToken persists the access token. Only the login flow calls this.
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	path, err := configPath("token.json")
	if err != nil {
		return err
	}
	return writeJSON(path, tokenFile{AccessToken: token})
}

// ClearToken removes the persisted token. Only the logout flow calls this.
func ClearToken() error {
	path, err := configPath("token.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LoadGenreCache returns the cached genre list and whether it is still fresh.
func LoadGenreCache() ([]model.Genre, bool, error) {
	path, err := cachePath("genres.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Genre](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= genreCacheTTL, nil
}

func SaveGenreCache(genres []model.Genre) error {
	path, err := cachePath("genres.json")
	if err != nil {
		return err
	}
	return saveCache(path, genres)
}

// LoadRecentMovies returns the recently viewed movies, most recent first.
func LoadRecentMovies() ([]RecentMovie, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var history movieHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid movie history format")
	}
	return history.Movies, nil
}

// RememberMovie moves a movie to the front of the history, bounded and
// deduplicated by id.
func RememberMovie(movie model.Movie) error {
	if movie.Id <= 0 {
		return errors.New("movie id is required")
	}
	history, _ := LoadRecentMovies()
	next := []RecentMovie{{ID: movie.Id, Title: movie.Title}}

	for _, existing := range history {
		if existing.ID == movie.Id {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentMovies {
			break
		}
	}

	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	return writeJSON(path, movieHistory{Movies: next})
}

// LoadLastFilters returns the serialized browse filter set from the previous
// session, or "" when none was saved.
func LoadLastFilters() (string, error) {
	path, err := configPath("filters.json")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var file filtersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", errors.New("invalid filters file format")
	}
	return file.Query, nil
}

// SaveLastFilters persists the serialized canonical filter set.
func SaveLastFilters(encoded string) error {
	path, err := configPath("filters.json")
	if err != nil {
		return err
	}
	return writeJSON(path, filtersFile{Query: encoded})
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	return writeJSON(path, cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	})
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
