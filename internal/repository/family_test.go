package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyForKnownPrefixes(t *testing.T) {
	vikings, ok := FamilyFor("vikings")
	require.True(t, ok)
	assert.Equal(t, "vikings_friday", vikings.Sessions)
	assert.False(t, vikings.HasLegs())
	assert.Equal(t, []string{"vikings_friday", "vikings_matches", "vikings_members"}, vikings.Tables())

	jda, ok := FamilyFor("jda")
	require.True(t, ok)
	assert.True(t, jda.HasLegs())
	assert.Contains(t, jda.Tables(), "jda_legs")
}

func TestFamilyForUnknownPrefix(t *testing.T) {
	_, ok := FamilyFor("Vikings")
	assert.False(t, ok, "prefix lookup is case sensitive")

	_, ok = FamilyFor("")
	assert.False(t, ok)
}

func TestKnownTableRejectsArbitraryNames(t *testing.T) {
	assert.True(t, knownTable("vikings_friday"))
	assert.True(t, knownTable("jda_matches"))
	assert.False(t, knownTable("profiles"))
	assert.False(t, knownTable("jda_stats; DROP TABLE profiles"))
}
