package bridge

import (
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func Test_Sniffer_collapsesRepeats(t *testing.T) {
	s := NewSniffer("test", testLogger())

	s.Observe([]byte{1, 2, 3})
	assert.Equal(t, 0, s.repeatCount)

	s.Observe([]byte{1, 2, 3})
	assert.Equal(t, 1, s.repeatCount)

	s.Observe([]byte{1, 2, 3})
	assert.Equal(t, 2, s.repeatCount)

	s.Observe([]byte{4, 5, 6})
	assert.Equal(t, 0, s.repeatCount)
	assert.Equal(t, []byte{4, 5, 6}, s.lastFrame)
}

func Test_HexDump_format(t *testing.T) {
	out := HexDump([]byte("hello"))
	assert.Contains(t, out, "68 65 6c 6c 6f")
	assert.Contains(t, out, "|hello")
}

func Test_HexDump_truncatesLongInput(t *testing.T) {
	data := make([]byte, 200)
	out := HexDump(data)
	assert.Contains(t, out, "bytes truncated")
}
