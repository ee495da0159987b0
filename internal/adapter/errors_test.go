package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	withMsg := &APIError{StatusCode: 404, Message: "not found", kind: ErrNotFound}
	withoutMsg := &APIError{StatusCode: 502, kind: ErrUnexpectedStatus}

	assert.Equal(t, "not found (http 404): not found", withMsg.Error())
	assert.Equal(t, "unexpected status (http 502)", withoutMsg.Error())
	assert.True(t, errors.Is(withMsg, ErrNotFound))
	assert.False(t, errors.Is(withMsg, ErrConflict))
}
