package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconLoadsAndCaches(t *testing.T) {
	first, err := Icon("breathe.svg")
	require.NoError(t, err)
	assert.Equal(t, "breathe.svg", first.Name())
	assert.NotEmpty(t, first.Content())

	second := MustIcon("breathe.svg")
	assert.Same(t, first, second)
}

func TestIconMissing(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
