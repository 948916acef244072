package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeen_MarkAndContains(t *testing.T) {
	s := NewSeen[string](10, time.Hour)

	assert.False(t, s.Contains("a"))
	s.Mark("a")
	assert.True(t, s.Contains("a"))
	assert.Equal(t, 1, s.Size())
}

func TestSeen_EvictsLeastRecent(t *testing.T) {
	s := NewSeen[string](2, time.Hour)

	s.Mark("a")
	s.Mark("b")
	s.Mark("a")
	s.Mark("c")

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
	assert.True(t, s.Contains("c"))
	assert.Equal(t, 2, s.Size())
}

func TestSeen_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSeen[string](10, time.Minute)
	s.now = func() time.Time { return now }

	s.Mark("a")
	now = now.Add(30 * time.Second)
	assert.True(t, s.Contains("a"))

	now = now.Add(time.Minute)
	assert.False(t, s.Contains("a"))
	assert.Equal(t, 0, s.Size())
}
