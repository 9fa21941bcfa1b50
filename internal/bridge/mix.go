package bridge

import "fmt"

/*------------------------------------------------------------------
 *
 * Purpose:	mixLinkRequest / mixUnlinkRequest / mixDisabled command
 *		payloads, and the call-me variant's alternate layout.
 *
 * Description:	MixAction distinguishes the three mix operations. Link
 *		expands into two frames at build time (enable, then link) -
 *		the device rejects a link request while the route is
 *		Disabled, so an idempotent enable frame goes first. The two
 *		frames must reach the device in order with a pause between
 *		them (owned by the proxy core, not this file - see
 *		proxy.go).
 *
 *---------------------------------------------------------------*/

// MixAction is one of the three mix-routing operations.
type MixAction int

const (
	MixLink MixAction = iota
	MixUnlink
	MixDisable
)

var mixTail = []byte{0x01, 0x07, 0x08, 0x01, 0x01, 0x02, 0x01, 0x01, 0x02}

// MixPrefix computes the one-byte prefix the device expects for a regular
// (non call-me) mix command: source_index*13 + mix_index, wrapping modulo
// 256 as an implicit consequence of the byte width.
func MixPrefix(sourceIndex, mixIndex byte) byte {
	return sourceIndex*13 + mixIndex
}

// MixCommand links, unlinks, or disables a Source in a MixOutput.
type MixCommand struct {
	Action MixAction
	Mix    MixOutput
	Source Source
}

// ErrCallMeDisableUnsupported is returned by ParseControlMessage when a
// message asks to disable a call-me source, which the device does not
// support under any known encoding. BuildPayloads itself returns no
// payload for that combination.
var ErrCallMeDisableUnsupported = fmt.Errorf("callme disable is not supported by the device")

// BuildPayloads implements RodeCommand. It dispatches to the call-me
// layout when c.Source is one of the three call-me guest channels.
func (c MixCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	if c.Source.IsCallMe() {
		return c.buildCallMePayloads()
	}

	prefix := MixPrefix(c.Source.Index(), c.Mix.Index())

	switch c.Action {
	case MixLink:
		enable := appendFrame(sessionID, prefix, "mixDisabled\x00", 0x01, 0x01, 0x03)
		link := appendFrame(sessionID, prefix, "mixLinkRequest\x00", mixTail...)
		return [][]byte{enable, link}
	case MixUnlink:
		return [][]byte{appendFrame(sessionID, prefix, "mixUnlinkRequest\x00", mixTail...)}
	case MixDisable:
		return [][]byte{appendFrame(sessionID, prefix, "mixDisabled\x00", 0x01, 0x01, 0x02)}
	default:
		return nil
	}
}

func (c MixCommand) buildCallMePayloads() [][]byte {
	callMeIndex := c.Source.Index() // 1, 2, or 3 (see sourceIndex in names.go)
	first := 4 + c.Mix.Index()

	switch c.Action {
	case MixLink:
		return [][]byte{appendCallMeFrame(first, callMeIndex, "mixLinkRequest\x00")}
	case MixUnlink:
		return [][]byte{appendCallMeFrame(first, callMeIndex, "mixUnlinkRequest\x00")}
	default:
		return nil
	}
}

func appendFrame(sessionID [4]byte, prefix byte, tag string, tail ...byte) []byte {
	var p []byte
	p = append(p, sessionID[:]...)
	p = append(p, prefix)
	p = append(p, []byte(tag)...)
	p = append(p, tail...)
	return p
}

func appendCallMeFrame(first, second byte, tag string) []byte {
	var p []byte
	p = append(p, CallMeSessionID[:]...)
	p = append(p, first, second)
	p = append(p, []byte(tag)...)
	p = append(p, mixTail...)
	return p
}
