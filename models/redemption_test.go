package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedemptionStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RedemptionStatus
		want     bool
	}{
		{RedemptionPending, RedemptionUsed, true},
		{RedemptionUsed, RedemptionCompleted, true},

		{RedemptionPending, RedemptionCompleted, false}, // no skipping
		{RedemptionPending, RedemptionPending, false},
		{RedemptionUsed, RedemptionPending, false}, // nothing moves backwards
		{RedemptionUsed, RedemptionUsed, false},
		{RedemptionCompleted, RedemptionPending, false},
		{RedemptionCompleted, RedemptionUsed, false},
		{RedemptionCompleted, RedemptionCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestEventMatchesStudent(t *testing.T) {
	normal := &Event{EventType: EventNormal}
	special := &Event{EventType: EventSpecial}

	assert.True(t, normal.MatchesStudent(StudentNormal))
	assert.False(t, normal.MatchesStudent(StudentSpecial))
	assert.True(t, special.MatchesStudent(StudentSpecial))
	assert.False(t, special.MatchesStudent(StudentNormal))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidAdminRole(RoleSuperAdmin))
	assert.True(t, ValidAdminRole(RoleGlobal))
	assert.False(t, ValidAdminRole("root"))

	assert.True(t, ValidEventType(EventNormal))
	assert.False(t, ValidEventType("vip"))

	assert.True(t, ValidStudentType(StudentSpecial))
	assert.False(t, ValidStudentType(""))
}
