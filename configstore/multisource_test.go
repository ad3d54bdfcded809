package configstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/certomancer/certomancer-go/interfaces"
)

// MockConfigSource implements interfaces.ConfigSource for testing.
type MockConfigSource struct {
	mock.Mock
	name string
}

func (m *MockConfigSource) Fetch(ctx context.Context, name interfaces.ConfigName) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockConfigSource) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockConfigSource) Name() string {
	return m.name
}

func (m *MockConfigSource) LocationURI() string {
	return "mock:" + m.name
}

func TestMultiSourceAvailable(t *testing.T) {
	tests := []struct {
		name     string
		sources  []bool
		expected bool
	}{
		{
			name:     "all sources available",
			sources:  []bool{true, true},
			expected: true,
		},
		{
			name:     "one source available",
			sources:  []bool{false, true},
			expected: true,
		},
		{
			name:     "no sources available",
			sources:  []bool{false, false},
			expected: false,
		},
		{
			name:     "no sources",
			sources:  []bool{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sources []interfaces.ConfigSource
			for i, available := range tt.sources {
				source := &MockConfigSource{name: string(rune('a' + i))}
				source.On("Available", mock.Anything).Return(available)
				sources = append(sources, source)
			}

			multi := NewMultiSource(sources, testLogger())
			assert.Equal(t, tt.expected, multi.Available(context.Background()))
		})
	}
}

func TestMultiSourceFetchFallback(t *testing.T) {
	document := []byte("pki-architectures: {}\n")

	first := &MockConfigSource{name: "first"}
	first.On("Available", mock.Anything).Return(true)
	first.On("Fetch", mock.Anything, mock.Anything).Return(nil, interfaces.ErrConfigNotFound)

	second := &MockConfigSource{name: "second"}
	second.On("Available", mock.Anything).Return(true)
	second.On("Fetch", mock.Anything, mock.Anything).Return(document, nil)

	multi := NewMultiSource([]interfaces.ConfigSource{first, second}, testLogger())
	data, err := multi.Fetch(context.Background(), "demo.yml")
	assert.NoError(t, err)
	assert.Equal(t, document, data)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMultiSourceSkipsUnavailable(t *testing.T) {
	document := []byte("keysets: {}\n")

	down := &MockConfigSource{name: "down"}
	down.On("Available", mock.Anything).Return(false)

	up := &MockConfigSource{name: "up"}
	up.On("Available", mock.Anything).Return(true)
	up.On("Fetch", mock.Anything, mock.Anything).Return(document, nil)

	multi := NewMultiSource([]interfaces.ConfigSource{down, up}, testLogger())
	data, err := multi.Fetch(context.Background(), "demo.yml")
	assert.NoError(t, err)
	assert.Equal(t, document, data)

	down.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestMultiSourceAllMiss(t *testing.T) {
	first := &MockConfigSource{name: "first"}
	first.On("Available", mock.Anything).Return(true)
	first.On("Fetch", mock.Anything, mock.Anything).Return(nil, interfaces.ErrConfigNotFound)

	second := &MockConfigSource{name: "second"}
	second.On("Available", mock.Anything).Return(true)
	second.On("Fetch", mock.Anything, mock.Anything).Return(nil, interfaces.ErrConfigNotFound)

	multi := NewMultiSource([]interfaces.ConfigSource{first, second}, testLogger())
	_, err := multi.Fetch(context.Background(), "demo.yml")
	assert.True(t, errors.Is(err, interfaces.ErrConfigNotFound))
}

func TestMultiSourceMixedFailures(t *testing.T) {
	miss := &MockConfigSource{name: "miss"}
	miss.On("Available", mock.Anything).Return(true)
	miss.On("Fetch", mock.Anything, mock.Anything).Return(nil, interfaces.ErrConfigNotFound)

	broken := &MockConfigSource{name: "broken"}
	broken.On("Available", mock.Anything).Return(true)
	broken.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("backend exploded"))

	multi := NewMultiSource([]interfaces.ConfigSource{miss, broken}, testLogger())
	_, err := multi.Fetch(context.Background(), "demo.yml")
	assert.Error(t, err)
	// a hard failure is not reported as a plain miss
	assert.False(t, errors.Is(err, interfaces.ErrConfigNotFound))
	assert.Contains(t, err.Error(), "broken")
}
