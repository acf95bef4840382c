package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModerate(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleUser, false},
		{RoleMiddleman, false},
		{RoleModerator, true},
		{RoleAdmin, true},
		{RoleBanned, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.CanModerate())
		})
	}
}

func TestCanAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.CanAdmin())
	assert.False(t, RoleModerator.CanAdmin())
	assert.False(t, RoleUser.CanAdmin())
}

func TestBanned(t *testing.T) {
	assert.True(t, RoleBanned.Banned())
	assert.False(t, RoleUser.Banned())
}

func TestOwnerOrModerator(t *testing.T) {
	assert.True(t, OwnerOrModerator(1, 1, RoleUser), "owner")
	assert.True(t, OwnerOrModerator(2, 1, RoleModerator), "moderator")
	assert.False(t, OwnerOrModerator(2, 1, RoleUser), "stranger")
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleMiddleman))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
