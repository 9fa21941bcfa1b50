package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FrameCommand_singlePayload(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	framed := FrameCommand(TouchCommand{}, sessionID)
	assert.Len(t, framed, 1)

	decoded, consumed, ok := DecodeFrame(framed[0])
	assert.True(t, ok)
	assert.Equal(t, len(framed[0]), consumed)
	assert.Equal(t, TouchCommand{}.BuildPayloads(sessionID)[0], decoded.Payload)
}

func Test_FrameCommand_multiPayload(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	framed := FrameCommand(MixCommand{Action: MixLink, Mix: Headphone1, Source: SrcBluetooth}, sessionID)
	assert.Len(t, framed, 2)
	for _, f := range framed {
		_, _, ok := DecodeFrame(f)
		assert.True(t, ok)
	}
}
