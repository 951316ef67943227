package prefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data map[string]Preferences
	fail bool
}

func (m *memStore) Get(key string, dest interface{}) (bool, error) {
	if m.fail {
		return false, errors.New("store broken")
	}
	p, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*dest.(*Preferences) = p
	return true, nil
}

func (m *memStore) Set(key string, value interface{}) error {
	if m.fail {
		return errors.New("store broken")
	}
	m.data[key] = value.(Preferences)
	return nil
}

func TestPreferencesRoundtrip(t *testing.T) {
	mgr := NewManager(&memStore{data: map[string]Preferences{}})

	require.NoError(t, mgr.Set(Preferences{WeatherLocation: "Reykjavik", Theme: "dark"}))

	got := mgr.Get()
	assert.Equal(t, "Reykjavik", got.WeatherLocation)
	assert.Equal(t, "dark", got.Theme)
}

func TestPreferencesEmptyStore(t *testing.T) {
	mgr := NewManager(&memStore{data: map[string]Preferences{}})

	assert.Equal(t, Preferences{}, mgr.Get())
}

func TestPreferencesBrokenStoreYieldsDefaults(t *testing.T) {
	mgr := NewManager(&memStore{fail: true})

	assert.Equal(t, Preferences{}, mgr.Get())
	assert.Error(t, mgr.Set(Preferences{Theme: "light"}))
}
