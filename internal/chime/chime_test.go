package chime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTone_LengthMatchesConfig(t *testing.T) {
	t.Parallel()

	c := New(440, 250*time.Millisecond)
	tone, err := c.tone()
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(250*time.Millisecond), total)
}

func TestTone_RejectsBadFrequency(t *testing.T) {
	t.Parallel()

	// Above Nyquist for the fixed sample rate.
	c := New(float64(sampleRate), time.Second)
	_, err := c.tone()
	require.Error(t, err)
}
