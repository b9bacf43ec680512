package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalFromBool(t *testing.T) {
	assert.Equal(t, ApprovalApproved, ApprovalFromBool(true))
	assert.Equal(t, ApprovalRejected, ApprovalFromBool(false))
}

func TestApprovalPredicates(t *testing.T) {
	assert.True(t, ApprovalApproved.Approved())
	assert.False(t, ApprovalApproved.Rejected())
	assert.True(t, ApprovalRejected.Rejected())
	assert.False(t, ApprovalRejected.Approved())
	assert.False(t, ApprovalUnset.Approved())
	assert.False(t, ApprovalUnset.Rejected())
}
