package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Unavailable("writing run", cause)

	assert.Equal(t, "UNAVAILABLE: writing run: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())

	bare := MalformedRecord("job posting without id", nil)
	assert.Equal(t, "MALFORMED_RECORD: job posting without id", bare.Error())
	assert.Nil(t, bare.Unwrap())
	assert.NotEmpty(t, bare.StackTrace())
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("aggregate: %w", Imbalance("country_skill_counts sums to 3, want 4", nil))

	assert.True(t, Is(err, ErrTypeImbalance))
	assert.False(t, Is(err, ErrTypeInternal))
	assert.False(t, Is(stderrors.New("plain"), ErrTypeImbalance))
	assert.False(t, Is(nil, ErrTypeImbalance))

	var de *DomainError
	require.True(t, stderrors.As(err, &de))
	assert.Equal(t, ErrTypeImbalance, de.Type)
}

func TestConstructorsSetType(t *testing.T) {
	cases := map[ErrorType]*DomainError{
		ErrTypeNotFound:        NotFound("x", nil),
		ErrTypeInvalidInput:    InvalidInput("x", nil),
		ErrTypeInternal:        Internal("x", nil),
		ErrTypeUnavailable:     Unavailable("x", nil),
		ErrTypeMalformedRecord: MalformedRecord("x", nil),
		ErrTypeImbalance:       Imbalance("x", nil),
	}
	for want, err := range cases {
		assert.Equal(t, want, err.Type)
	}
}
