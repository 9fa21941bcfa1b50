package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Wire envelope for the device protocol: magic, length,
 *		payload - and best-effort session id extraction from
 *		observed traffic.
 *
 * Description:	A frame is magic(LE32) | length(LE32) | payload[length].
 *		Session id extraction looks only at the head of the most
 *		recently read buffer; it does not reframe or re-chunk, so
 *		a split read can cause a missed extraction.  That's
 *		acceptable - see spec §9.
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"encoding/binary"
)

// FrameMagic is the little-endian 32-bit constant that opens every frame.
const FrameMagic uint32 = 0xF2B49E2C

var pingTag = []byte("ping")

// Frame is a decoded packet from the wire: a length-prefixed payload.
type Frame struct {
	Payload []byte
}

// Encode emits magic, length, and payload bytes for p.
func (p Frame) Encode() []byte {
	buf := make([]byte, 8+len(p.Payload))
	binary.LittleEndian.PutUint32(buf[0:4], FrameMagic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(p.Payload)))
	copy(buf[8:], p.Payload)
	return buf
}

// DecodeFrame parses a single frame from the head of b. It returns the
// frame, the number of bytes consumed, and whether a complete frame was
// available. A frame is only accepted once 8 bytes of magic+length have
// been buffered and length additional bytes follow. If b holds more than
// one frame, only the first is decoded and consumed reports its size; if b
// holds less than one frame, ok is false.
func DecodeFrame(b []byte) (frame Frame, consumed int, ok bool) {
	if len(b) < 8 {
		return Frame{}, 0, false
	}
	if binary.LittleEndian.Uint32(b[0:4]) != FrameMagic {
		return Frame{}, 0, false
	}
	length := binary.LittleEndian.Uint32(b[4:8])
	total := 8 + int(length)
	if len(b) < total {
		return Frame{}, 0, false
	}
	payload := make([]byte, length)
	copy(payload, b[8:total])
	return Frame{Payload: payload}, total, true
}

// ExtractSessionID reports the 4-byte session id carried in an observed
// read buffer b, best-effort. It returns ok=false when b is too short,
// doesn't start with the magic, or carries a "ping" frame (which the
// device sends with no session id of its own).
func ExtractSessionID(b []byte) (id [4]byte, ok bool) {
	if len(b) < 12 {
		return id, false
	}
	if binary.LittleEndian.Uint32(b[0:4]) != FrameMagic {
		return id, false
	}
	if bytes.Equal(b[8:12], pingTag) {
		return id, false
	}
	copy(id[:], b[8:12])
	return id, true
}

// DefaultSessionID is used until the proxy observes real traffic.
var DefaultSessionID = [4]byte{0x01, 0x01, 0x01, 0x01}

// CallMeSessionID is the fixed session id substituted for call-me commands.
var CallMeSessionID = [4]byte{0x01, 0x01, 0x01, 0x02}
