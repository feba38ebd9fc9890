package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v uint) *uint { return &v }

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleManager, ParseUserRole("manager"))
	assert.Equal(t, RoleTechnician, ParseUserRole("root"))
}

func TestScopeCenter(t *testing.T) {
	assert.Equal(t, ptr(7), ScopeCenter(RoleAdmin, ptr(1), ptr(7)))
	assert.Nil(t, ScopeCenter(RoleAdmin, nil, nil))
	assert.Equal(t, ptr(1), ScopeCenter(RoleAttendant, ptr(1), ptr(7)))
	assert.Equal(t, ptr(1), ScopeCenter(RoleManager, ptr(1), nil))
	assert.Equal(t, ptr(7), ScopeCenter(RoleTechnician, nil, ptr(7)))
}
