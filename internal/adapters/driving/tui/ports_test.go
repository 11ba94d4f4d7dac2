package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	assert.NoError(t, (&Ports{Events: &mockEventService{}}).Validate())
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingEventService)

	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingEventService)
}
