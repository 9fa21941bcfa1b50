package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	The internal command variant and the dispatch from a
 *		command to its framed wire payloads.
 *
 * Description:	RodeCommand is satisfied by MuteCommand, SetSourceCommand,
 *		SetMicTypeCommand, SetLevelCommand, TouchCommand, and
 *		MixCommand - the tagged variants spec.md's data model names.
 *		A command can expand into more than one payload (MixCommand
 *		with Action == MixLink on a non call-me source does);
 *		FrameCommand turns each
 *		payload into a ready-to-write framed byte slice.
 *
 *---------------------------------------------------------------*/

// RodeCommand builds one or more raw (unframed) payloads bound to a
// session id. Most commands produce exactly one payload; MixLink on a
// non call-me source produces two, which must be written to the wire in
// order.
type RodeCommand interface {
	BuildPayloads(sessionID [4]byte) [][]byte
}

// FrameCommand builds cmd's payloads bound to sessionID and frames each one
// for direct transmission.
func FrameCommand(cmd RodeCommand, sessionID [4]byte) [][]byte {
	payloads := cmd.BuildPayloads(sessionID)
	framed := make([][]byte, len(payloads))
	for i, p := range payloads {
		framed[i] = Frame{Payload: p}.Encode()
	}
	return framed
}
