package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestWrapKeepsKind(t *testing.T) {
	reqErr := NewRequestError("request timed out", "/api/files", 0, TimedOut, nil)
	wrapped := Wrap(reqErr, "load catalog")

	assert.True(t, IsTimedOut(wrapped))
	assert.True(t, IsTransport(wrapped))
	assert.False(t, IsCanceled(wrapped))

	// stdlib wrapping is classified through the chain too
	assert.Equal(t, TimedOut, KindOf(fmt.Errorf("outer: %w", reqErr)))
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "please enter a filename", ErrEmptyFilename.Error())
	assert.Equal(t, "filename", ErrEmptyFilename.Field())
	assert.True(t, IsValidation(ErrEmptyFilename))
	assert.False(t, IsTransport(ErrEmptyFilename))
}

func TestRequestError(t *testing.T) {
	tests := []struct {
		name string
		err  *RequestError
		want string
	}{
		{
			name: "status only",
			err:  NewRequestError("request failed", "/api/create", 500, Transport, nil),
			want: "request failed: /api/create: status 500",
		},
		{
			name: "cause without status",
			err:  NewRequestError("request failed", "/api/files", 0, Transport, errors.New("connection refused")),
			want: "request failed: /api/files: connection refused",
		},
		{
			name: "bare",
			err:  NewRequestError("request canceled", "", 0, Canceled, nil),
			want: "request canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, IsTransport(tt.err))
		})
	}

	reqErr := NewRequestError("request failed", "/api/view", 404, Transport, nil)
	var re *RequestError
	assert.True(t, As(Wrap(reqErr, "view"), &re))
	assert.Equal(t, 404, re.Status())
	assert.Equal(t, "/api/view", re.Endpoint())
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "server.timeout", InvalidConfig, nil)
	assert.Equal(t, "invalid value: server.timeout", configErr.Error())
	assert.Equal(t, "server.timeout", configErr.Param())

	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "server.timeout", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: server.timeout: value out of range", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot read", "/tmp/x.go", nil)
	assert.Equal(t, "cannot read: /tmp/x.go", fileErr.Error())
	assert.Equal(t, "/tmp/x.go", fileErr.Path())
	assert.Equal(t, FileOperationFailed, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot read", "/tmp/x.go", origErr)
	assert.Equal(t, "cannot read: /tmp/x.go: permission denied", fileErr.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "timed out", TimedOut.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Busy, KindOf(ErrBusy))
}
