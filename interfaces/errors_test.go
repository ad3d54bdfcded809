package interfaces

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchErrorFormatting(t *testing.T) {
	err := NewArchError("demo", ErrMissingField, "could not process 'services' element")
	assert.Equal(t, "could not process 'services' element (certomancer arch 'demo')", err.Error())
}

func TestArchErrorUnknownLabel(t *testing.T) {
	err := NewArchError("", ErrStructural, "invalid JSON structure")
	assert.Equal(t, "invalid JSON structure (certomancer arch '<unknown>')", err.Error())
}

func TestArchErrorWithCause(t *testing.T) {
	cause := errors.New("illegal base64 data")
	err := WrapArchError("demo", ErrDecoding, "could not decode certificate 'root'", cause)
	assert.Equal(t, "could not decode certificate 'root' (certomancer arch 'demo'): illegal base64 data", err.Error())
}

func TestArchErrorSentinelMatching(t *testing.T) {
	cause := errors.New("asn1: structure error")
	err := WrapArchError("demo", ErrDecoding, "could not decode certificate 'root'", cause)

	assert.True(t, errors.Is(err, ErrDecoding))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrResolution))
	assert.False(t, errors.Is(err, ErrStructural))

	var archErr *ArchError
	require.True(t, errors.As(err, &archErr))
	assert.Equal(t, "demo", archErr.Label)
}

func TestArchErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrTransport,
		ErrConfigNotFound,
		ErrSourceUnavailable,
		ErrInvalidSourceURI,
		ErrStructural,
		ErrMissingField,
		ErrDecoding,
		ErrResolution,
		ErrValidation,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
