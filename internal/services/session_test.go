package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	s := NewSession()
	_, ok := s.Username()
	assert.False(t, ok)

	s.begin("alice")
	name, ok := s.Username()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	s.end()
	_, ok = s.Username()
	assert.False(t, ok)
}
