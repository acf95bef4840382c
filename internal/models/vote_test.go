package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionValue(t *testing.T) {
	value, ok := DirectionValue(VoteUp)
	require.True(t, ok)
	assert.Equal(t, 1, value)

	value, ok = DirectionValue(VoteDown)
	require.True(t, ok)
	assert.Equal(t, -1, value)

	_, ok = DirectionValue("sideways")
	assert.False(t, ok)
}

func TestValueDirection(t *testing.T) {
	up := ValueDirection(1)
	require.NotNil(t, up)
	assert.Equal(t, VoteUp, *up)

	down := ValueDirection(-1)
	require.NotNil(t, down)
	assert.Equal(t, VoteDown, *down)

	assert.Nil(t, ValueDirection(0))
}

func TestValidSubject(t *testing.T) {
	assert.True(t, ValidSubject(SubjectTrade))
	assert.True(t, ValidSubject(SubjectForumPost))
	assert.True(t, ValidSubject(SubjectEvent))
	assert.False(t, ValidSubject("wishlist_item"))
}
