package bridge

import "encoding/binary"

/*------------------------------------------------------------------
 *
 * Purpose:	channelInputSource and inputMicrophoneType command payloads.
 *
 *---------------------------------------------------------------*/

// SetSourceCommand routes a Source onto a fader's input.
type SetSourceCommand struct {
	Fader  Fader
	Source Source
}

// BuildPayloads implements RodeCommand.
func (c SetSourceCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	var p []byte
	p = append(p, sessionID[:]...)
	p = append(p, 0x1C+c.Fader.Index())
	p = append(p, []byte("channelInputSource\x00")...)
	p = append(p, 0x01)
	p = append(p, 0x05) // Type: Integer
	p = append(p, 0x01) // Count
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(c.Source.Index()))
	p = append(p, buf[:]...)
	return [][]byte{p}
}

// MicType names a combo-input preamp personality (XLR mic, line, Bluetooth,
// etc). The device encodes it as the same wire value used for a Source, but
// semantically it configures the physical input stage, not routing.
type MicType uint32

const (
	MicTypeXLR       MicType = 0
	MicTypeTRS       MicType = 1
	MicTypeTRRS      MicType = 2
	MicTypeBluetooth MicType = 3
)

// MicTypeFromInt32 reinterprets a signed 32-bit value as the unsigned wire
// encoding the device expects, so sentinels such as -1 round-trip to
// 0xFFFFFFFF rather than being clamped or rejected.
func MicTypeFromInt32(v int32) MicType {
	return MicType(uint32(v))
}

// SetMicTypeCommand configures a combo input's preamp personality.
type SetMicTypeCommand struct {
	Fader   Fader
	MicType MicType
}

// BuildPayloads implements RodeCommand.
func (c SetMicTypeCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	var p []byte
	p = append(p, sessionID[:]...)
	p = append(p, 0x1C+c.Fader.Index())
	p = append(p, []byte("inputMicrophoneType\x00")...)
	p = append(p, 0x01)
	p = append(p, 0x05)
	p = append(p, 0x01)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(c.MicType))
	p = append(p, buf[:]...)
	return [][]byte{p}
}
