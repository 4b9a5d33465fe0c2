package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Predicates(t *testing.T) {
	tests := []struct {
		role        Role
		valid       bool
		isAdmin     bool
		isSuperuser bool
		isBlocked   bool
		canBuy      bool
	}{
		{RoleUser, true, false, false, false, false},
		{RoleUserCanBuy, true, false, false, false, true},
		{RoleUserBlocked, true, false, false, true, false},
		{RoleAdmin, true, true, false, false, false},
		{RoleAdminBlocked, true, false, false, true, false},
		{RoleSuperuser, true, true, true, false, false},
		{Role(0), false, false, false, false, false},
		{Role(42), false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
			assert.Equal(t, tt.isAdmin, tt.role.IsAdmin())
			assert.Equal(t, tt.isSuperuser, tt.role.IsSuperuser())
			assert.Equal(t, tt.isBlocked, tt.role.IsBlocked())
			assert.Equal(t, tt.canBuy, tt.role.CanBuy())
		})
	}
}

func TestApplicationStatus_Terminal(t *testing.T) {
	assert.False(t, ApplicationStatusPending.Terminal())
	assert.True(t, ApplicationStatusApproved.Terminal())
	assert.True(t, ApplicationStatusRejected.Terminal())
}
