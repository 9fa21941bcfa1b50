package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Observational traffic dump with run-length collapse of
 *		identical consecutive frames.
 *
 * Description:	Each direction of a spliced connection gets its own
 *		Sniffer. It never alters or drops traffic - it only
 *		decides what to log: a frame identical to the one
 *		immediately before it just increments a counter; a frame
 *		that differs flushes the pending repeat count (if any) and
 *		logs the new frame as a hexdump.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const hexDumpMaxBytes = 128

// Sniffer tracks the most recently observed frame on one direction of a
// connection and collapses immediate repeats.
type Sniffer struct {
	label       string
	logger      *log.Logger
	lastFrame   []byte
	hasLast     bool
	repeatCount int
}

// NewSniffer returns a Sniffer that logs through logger, tagging every
// line with label (e.g. "client->upstream").
func NewSniffer(label string, logger *log.Logger) *Sniffer {
	return &Sniffer{label: label, logger: logger}
}

// Observe records data as the latest frame seen on this direction.
func (s *Sniffer) Observe(data []byte) {
	if s.hasLast && bytesEqual(s.lastFrame, data) {
		s.repeatCount++
		return
	}
	s.flushRepeat()
	s.logger.Info("frame observed", "direction", s.label, "bytes", len(data))
	s.logger.Debug(HexDump(data), "direction", s.label)
	s.lastFrame = append([]byte(nil), data...)
	s.hasLast = true
	s.repeatCount = 0
}

func (s *Sniffer) flushRepeat() {
	if s.repeatCount > 0 {
		s.logger.Info(fmt.Sprintf("previous frame repeated %d times", s.repeatCount), "direction", s.label)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HexDump renders data as an offset/hex/ASCII dump:
// an 8-digit offset, up to 16 hex byte columns, and an ASCII gutter with
// '.' standing in for non-printable bytes. Output beyond 128 bytes is
// truncated with a trailer noting how much was dropped.
func HexDump(data []byte) string {
	var b strings.Builder
	display := data
	truncated := 0
	if len(display) > hexDumpMaxBytes {
		truncated = len(display) - hexDumpMaxBytes
		display = display[:hexDumpMaxBytes]
	}

	for offset := 0; offset < len(display); offset += 16 {
		end := offset + 16
		if end > len(display) {
			end = len(display)
		}
		chunk := display[offset:end]

		fmt.Fprintf(&b, "%08x  ", offset)
		for _, c := range chunk {
			fmt.Fprintf(&b, "%02x ", c)
		}
		for i := len(chunk); i < 16; i++ {
			b.WriteString("   ")
		}
		b.WriteString(" |")
		for _, c := range chunk {
			if c >= 0x20 && c <= 0x7E {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	if truncated > 0 {
		fmt.Fprintf(&b, "... (%d bytes truncated)\n", truncated)
	}
	return b.String()
}
