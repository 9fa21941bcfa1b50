package bridge

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SetSourceCommand(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	cmd := SetSourceCommand{Fader: Physical1, Source: SrcBluetooth}

	payloads := cmd.BuildPayloads(sessionID)
	assert.Len(t, payloads, 1)
	payload := payloads[0]

	expectedPrefix := append([]byte{0x01, 0x02, 0x03, 0x04, 0x1C}, []byte("channelInputSource\x00")...)
	expectedPrefix = append(expectedPrefix, 0x01, 0x05, 0x01)
	assert.Equal(t, expectedPrefix, payload[:len(expectedPrefix)])

	gotSrc := binary.LittleEndian.Uint32(payload[len(payload)-4:])
	assert.Equal(t, uint32(SrcBluetooth.Index()), gotSrc)
}

func Test_SetMicTypeCommand(t *testing.T) {
	sessionID := [4]byte{0x01, 0x02, 0x03, 0x04}
	cmd := SetMicTypeCommand{Fader: Physical1, MicType: MicTypeXLR}

	payloads := cmd.BuildPayloads(sessionID)
	payload := payloads[0]
	assert.Contains(t, string(payload), "inputMicrophoneType\x00")
}

func Test_MicTypeFromInt32_negativeSentinel(t *testing.T) {
	mt := MicTypeFromInt32(-1)
	assert.Equal(t, MicType(0xFFFFFFFF), mt)
}
