package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHandles(t *testing.T) {
	assert.Equal(t,
		[]string{"alice", "bob", "carol"},
		splitHandles("alice, bob;carol"))

	assert.Equal(t,
		[]string{"solo"},
		splitHandles("  solo  "))

	assert.Empty(t, splitHandles(" , ;\n"))
}

func TestCleanAliases(t *testing.T) {
	assert.Equal(t,
		[]string{"Team Rocket", "team_rocket"},
		cleanAliases([]string{" Team Rocket ", "team_rocket", "", "Team Rocket"}))

	assert.Empty(t, cleanAliases(nil))
}
