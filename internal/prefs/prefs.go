// Package prefs persists small last-used UI preferences across restarts in
// the local key→JSON store. Nothing here is authoritative; a lost or corrupt
// file just resets the defaults.
package prefs

import (
	"sync"
)

const storeKey = "ui_preferences"

// Preferences are the remembered UI choices.
type Preferences struct {
	WeatherLocation string `json:"weather_location,omitempty"`
	Theme           string `json:"theme,omitempty"`
}

// Store is the persistence seam; localstore.Store satisfies it.
type Store interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}) error
}

// Manager reads and writes the preferences blob.
type Manager struct {
	mu    sync.Mutex
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Get returns the stored preferences; missing or corrupt data yields the
// zero value, never an error.
func (m *Manager) Get() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()

	var p Preferences
	if _, err := m.store.Get(storeKey, &p); err != nil {
		return Preferences{}
	}
	return p
}

// Set replaces the stored preferences.
func (m *Manager) Set(p Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Set(storeKey, p)
}
