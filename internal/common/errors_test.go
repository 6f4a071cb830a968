package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewUserError("report.pdf is not ingested yet", cause)

	assert.Equal(t, "report.pdf is not ingested yet: no such file", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "report.pdf is not ingested yet", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("nothing to review", nil)
	assert.Equal(t, "nothing to review", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: true,
		},
		{
			name: "rate limit",
			err:  ErrRateLimit,
			want: true,
		},
		{
			name: "explicit retryable verdict",
			err:  &RetryableError{Err: errors.New("503"), Retryable: true},
			want: true,
		},
		{
			name: "explicit non-retryable verdict",
			err:  &RetryableError{Err: errors.New("400"), Retryable: false},
			want: false,
		},
		{
			name: "wrapped non-retryable verdict",
			err:  NewUserError("bad request", &RetryableError{Err: errors.New("400"), Retryable: false}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
