package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerDiscardsStaleGenerations(t *testing.T) {
	var seq Sequencer

	slow := seq.Next()
	fast := seq.Next()

	// The slow computation started first but finished last; only the fast
	// one's result may be applied.
	assert.False(t, seq.Fresh(slow))
	assert.True(t, seq.Fresh(fast))

	next := seq.Next()
	assert.False(t, seq.Fresh(fast))
	assert.True(t, seq.Fresh(next))
}
