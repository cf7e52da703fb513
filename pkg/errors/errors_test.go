package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		msg    string
	}{
		{name: "not found", err: NotFoundError("plan 7"), target: ErrNotFound, msg: "plan 7 not found"},
		{name: "unknown deployment", err: UnknownDeploymentError("shop"), target: ErrUnknownDeployment, msg: `"shop": unknown deployment`},
		{name: "expired without reason", err: SessionExpiredError(nil), target: ErrSessionExpired, msg: "session is invalid or has expired"},
		{name: "expired with reason", err: SessionExpiredError(errors.New("token revoked")), target: ErrSessionExpired, msg: "session is invalid or has expired: token revoked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.target))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestSessionExpiredErrorKeepsReason(t *testing.T) {
	reason := errors.New("signature is invalid")
	err := SessionExpiredError(reason)

	assert.True(t, Is(err, reason))
	assert.False(t, Is(err, ErrInvalidCredentials))
}
