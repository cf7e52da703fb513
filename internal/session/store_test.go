package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/internal/storage"
)

var trainingKeys = Keys{Credential: "sessionId", Profile: "userInfo"}

func TestStore_LoginLogout(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv, trainingKeys)
	assert.False(t, s.IsLoggedIn())

	profile := Profile{ID: 4, Name: "Dana Employee", Role: "employee", RoleDisplay: "Employee", AccountID: 3}
	require.NoError(t, s.Login("sess-1", profile))

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "Dana Employee", s.UserName())
	assert.Equal(t, "employee", s.UserRole())
	assert.Equal(t, "sess-1", s.Credential())

	v, ok, err := kv.Get("sessionId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sess-1", v)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.UserName())
	assert.Empty(t, s.UserRole())

	for _, key := range []string{"sessionId", "userInfo"} {
		_, ok, err := kv.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	require.NoError(t, s.Logout())
}

func TestStore_Rehydrates(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, NewStore(kv, trainingKeys).Login("sess-2", Profile{ID: 2, Name: "Tom Teacher", Role: "teacher"}))

	s := NewStore(kv, trainingKeys)
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "Tom Teacher", s.UserName())
	assert.Equal(t, int64(2), s.Profile().ID)
}

func TestStore_CorruptProfile(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("token", "jwt"))
	require.NoError(t, kv.Set("user", "{not json"))

	s := NewStore(kv, Keys{Credential: "token", Profile: "user"})

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, Profile{}, s.Profile())
	assert.Empty(t, s.UserName())
}

func TestStore_UserNameIsFullNameOnly(t *testing.T) {
	s := NewStore(storage.NewMemory(), Keys{Credential: "token", Profile: "user"})
	require.NoError(t, s.Login("jwt", Profile{Username: "dataseller"}))
	assert.Empty(t, s.UserName())
	assert.Equal(t, "dataseller", s.Profile().Username)
}

// failingStorage fails Set for one key and records what is left behind
type failingStorage struct {
	*storage.Memory
	failKey string
}

func (f *failingStorage) Set(key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Memory.Set(key, value)
}

func TestStore_LoginWriteFailureLeavesNoSession(t *testing.T) {
	tests := []struct {
		name    string
		failKey string
	}{
		{name: "credential write fails", failKey: "sessionId"},
		{name: "profile write fails", failKey: "userInfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := &failingStorage{Memory: storage.NewMemory(), failKey: tt.failKey}
			s := NewStore(kv, trainingKeys)

			err := s.Login("sess-1", Profile{ID: 4, Name: "Dana Employee", Role: "employee"})
			require.EqualError(t, err, "disk full")

			assert.False(t, s.IsLoggedIn())
			assert.Empty(t, s.UserName())
			assert.Equal(t, Profile{}, s.Profile())

			for _, key := range []string{"sessionId", "userInfo"} {
				_, ok, err := kv.Get(key)
				require.NoError(t, err)
				assert.False(t, ok, key)
			}

			restarted := NewStore(kv, trainingKeys)
			assert.False(t, restarted.IsLoggedIn())
		})
	}
}

func TestStore_FailedReloginKeepsPreviousSession(t *testing.T) {
	kv := &failingStorage{Memory: storage.NewMemory()}
	s := NewStore(kv, trainingKeys)
	require.NoError(t, s.Login("sess-1", Profile{Name: "Dana Employee"}))

	kv.failKey = "userInfo"
	require.Error(t, s.Login("sess-2", Profile{Name: "Tom Teacher"}))

	assert.Equal(t, "Dana Employee", s.UserName())
	stored, ok, err := kv.Get("sessionId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sess-1", stored)
}

func TestStore_ClearIsLogout(t *testing.T) {
	s := NewStore(storage.NewMemory(), trainingKeys)
	require.NoError(t, s.Login("sess", Profile{Name: "x"}))
	require.NoError(t, s.Clear())
	assert.False(t, s.IsLoggedIn())
}
