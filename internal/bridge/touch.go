package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	screenTouched command payload.
 *
 *---------------------------------------------------------------*/

// TouchCommand reports a screen-touch event on the device's control panel.
type TouchCommand struct{}

// BuildPayloads implements RodeCommand.
func (c TouchCommand) BuildPayloads(sessionID [4]byte) [][]byte {
	var p []byte
	p = append(p, sessionID[:]...)
	p = append(p, 0x07)
	p = append(p, []byte("screenTouched\x00")...)
	p = append(p, 0x01, 0x01, 0x02)
	return [][]byte{p}
}
