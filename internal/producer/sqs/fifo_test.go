package sqs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFIFO(t *testing.T) {
	assert.True(t, isFIFO("https://sqs.eu-central-1.amazonaws.com/1/published.fifo"))
	assert.False(t, isFIFO("https://sqs.eu-central-1.amazonaws.com/1/published"))
	assert.False(t, isFIFO(".fifo"))
}
