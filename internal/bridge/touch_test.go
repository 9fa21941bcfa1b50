package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TouchCommand(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	payloads := TouchCommand{}.BuildPayloads(sessionID)
	assert.Len(t, payloads, 1)

	expected := append([]byte{0x01, 0x02, 0x03, 0x04, 0x07}, []byte("screenTouched\x00")...)
	expected = append(expected, 0x01, 0x01, 0x02)
	assert.Equal(t, expected, payloads[0])
}
