package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MuteCommand_on(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	cmd := MuteCommand{Fader: Physical2, Mute: true} // fader index 1 -> 0x1C+1 = 0x1D

	payloads := cmd.BuildPayloads(sessionID)
	assert.Len(t, payloads, 1)

	expected := append([]byte{0x01, 0x02, 0x03, 0x04, 0x1D}, []byte("channelOutputMute\x00")...)
	expected = append(expected, 0x01, 0x01, 0x02)
	assert.Equal(t, expected, payloads[0])
}

func Test_MuteCommand_off(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	cmd := MuteCommand{Fader: Physical1, Mute: false}

	payloads := cmd.BuildPayloads(sessionID)
	last := payloads[0][len(payloads[0])-1]
	assert.Equal(t, byte(0x03), last)
}
