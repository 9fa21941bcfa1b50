package bridge

import (
	"encoding/binary"
	"math"
)

/*------------------------------------------------------------------
 *
 * Purpose:	faderLevel command payload.
 *
 * Description:	Unlike every other command, this one does not carry the
 *		learned session id - it uses its own fixed preamble,
 *		inherited verbatim from captured traffic (see spec §9).
 *
 *---------------------------------------------------------------*/

var levelPreamble = []byte{0x01, 0x01, 0x02, 0x00}

// SetLevelCommand sets a fader's gain to a raw 32-bit device value.
type SetLevelCommand struct {
	Fader Fader
	Level uint32
}

// BuildPayloads implements RodeCommand. sessionID is ignored: the device
// expects this command's own fixed preamble instead.
func (c SetLevelCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	var p []byte
	p = append(p, levelPreamble...)
	p = append(p, 0x01)
	p = append(p, 0x04+c.Fader.Index())
	p = append(p, []byte("faderLevel\x00")...)
	p = append(p, 0x01)
	p = append(p, 0x05)
	p = append(p, 0x01)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], c.Level)
	p = append(p, buf[:]...)
	return [][]byte{p}
}

// LevelFromUnit converts a unit-interval real (clamped to [0,1]) to the
// device's 32-bit level encoding: round(clamp(x,0,1) * 65535).
func LevelFromUnit(x float64) uint32 {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return uint32(math.Round(x * 65535))
}
