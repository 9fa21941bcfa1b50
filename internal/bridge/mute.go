package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	channelOutputMute command payload.
 *
 *---------------------------------------------------------------*/

// MuteCommand mutes or unmutes a fader's output.
type MuteCommand struct {
	Fader Fader
	Mute  bool
}

// BuildPayloads implements RodeCommand.
func (c MuteCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	var p []byte
	p = append(p, sessionID[:]...)
	p = append(p, 0x1C+c.Fader.Index())
	p = append(p, []byte("channelOutputMute\x00")...)
	p = append(p, 0x01) // Type
	p = append(p, 0x01) // Val
	if c.Mute {
		p = append(p, 0x02)
	} else {
		p = append(p, 0x03)
	}
	return [][]byte{p}
}
