package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceKind(t *testing.T) {
	tests := []struct {
		key      string
		expected ServiceKind
		known    bool
	}{
		{key: "ocsp", expected: ServiceOCSP, known: true},
		{key: "OCSP", expected: ServiceOCSP, known: true},
		{key: "time_stamping", expected: ServiceTimeStamping, known: true},
		{key: "Time_Stamping", expected: ServiceTimeStamping, known: true},
		{key: "crl_repo", expected: ServiceCRLRepo, known: true},
		{key: "cert_repo", expected: ServiceCertRepo, known: true},
		{key: "plugin", expected: ServicePlugin, known: true},
		{key: "timestamping", known: false},
		{key: "scep", known: false},
		{key: "", known: false},
	}

	for _, tt := range tests {
		t.Run("key "+tt.key, func(t *testing.T) {
			kind, ok := ParseServiceKind(tt.key)
			assert.Equal(t, tt.known, ok)
			if tt.known {
				assert.Equal(t, tt.expected, kind)
			}
		})
	}
}

func TestServiceKindsCoversAllConstants(t *testing.T) {
	assert.Len(t, ServiceKinds, 5)
	for _, kind := range ServiceKinds {
		parsed, ok := ParseServiceKind(kind.String())
		require.True(t, ok)
		assert.Equal(t, kind, parsed)
	}
}

func TestNewConfigName(t *testing.T) {
	valid := []string{
		"demo.yml",
		"pki/demo.yml",
		"a/b/c.yaml",
		"arch-2024_v1",
	}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			parsed, err := NewConfigName(name)
			require.NoError(t, err)
			assert.Equal(t, name, parsed.String())
			assert.NoError(t, parsed.Validate())
		})
	}

	invalid := []string{
		"",
		"/absolute.yml",
		"../escape.yml",
		"a/../b.yml",
		"a//b.yml",
		".hidden",
		"name with spaces",
	}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			_, err := NewConfigName(name)
			assert.Error(t, err)
		})
	}
}
