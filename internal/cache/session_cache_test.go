package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/internal/models"
)

func TestSessionCache_CreateAndGet(t *testing.T) {
	sc := NewSessionCache(time.Hour)

	created := sc.Create(models.Session{PersonID: 4, Username: "employee", Role: "employee"})
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.IssuedAt+3600, created.ExpiresAt)

	got, ok := sc.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, sc.Len())
}

func TestSessionCache_IDsAreUnique(t *testing.T) {
	sc := NewSessionCache(time.Hour)

	a := sc.Create(models.Session{PersonID: 1})
	b := sc.Create(models.Session{PersonID: 1})

	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionCache_UnknownAndEmptyID(t *testing.T) {
	sc := NewSessionCache(time.Hour)

	_, ok := sc.Get("")
	assert.False(t, ok)

	_, ok = sc.Get("missing")
	assert.False(t, ok)
}

func TestSessionCache_Delete(t *testing.T) {
	sc := NewSessionCache(time.Hour)
	s := sc.Create(models.Session{PersonID: 2})

	sc.Delete(s.ID)
	sc.Delete("never-existed")

	_, ok := sc.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, sc.Len())
}

func TestSessionCache_ExpiredSessionIsRejected(t *testing.T) {
	now := time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC)
	sc := NewSessionCache(time.Hour)
	sc.now = func() time.Time { return now }

	s := sc.Create(models.Session{PersonID: 4})

	now = now.Add(2 * time.Hour)
	_, ok := sc.Get(s.ID)
	assert.False(t, ok)
}
