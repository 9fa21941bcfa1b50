package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Local IPC control endpoint. Accepts one message per
 *		connection, normalises it to zero or more RodeCommand
 *		values, and publishes them to the broadcast.
 *
 * Description:	Parse order is typed (JSON) first, falling back to the
 *		legacy whitespace grammar. Invalid input is logged and
 *		dropped - the operator learns of failure via whatever sits
 *		in front of this endpoint (out of scope here, see
 *		cmd/bridgeapi).
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultControlSocket is the fixed IPC path spec.md §4.4 names.
const DefaultControlSocket = "/tmp/socket_bridge_control"

// ControlListener accepts connections on a Unix socket, parses one message
// per connection, and publishes the resulting commands.
type ControlListener struct {
	Path      string
	Broadcast *Broadcaster
	Logger    *log.Logger
}

// NewControlListener returns a ControlListener bound to path, publishing
// onto broadcast and logging through logger.
func NewControlListener(path string, broadcast *Broadcaster, logger *log.Logger) *ControlListener {
	return &ControlListener{Path: path, Broadcast: broadcast, Logger: logger}
}

// Serve removes any stale socket at l.Path, binds, sets owner-only
// permissions, and accepts connections until ctx is cancelled.
func (l *ControlListener) Serve(ctx context.Context) error {
	if err := os.Remove(l.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale control socket %s: %w", l.Path, err)
	}

	listener, err := net.Listen("unix", l.Path)
	if err != nil {
		return fmt.Errorf("binding control socket %s: %w", l.Path, err)
	}
	defer listener.Close()

	if err := os.Chmod(l.Path, 0600); err != nil {
		l.Logger.Warn("could not restrict control socket permissions", "path", l.Path, "err", err)
	}

	l.Logger.Info("control channel listening", "path", l.Path)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			l.Logger.Warn("control channel accept error", "err", err)
			continue
		}
		go l.handle(conn)
	}
}

func (l *ControlListener) handle(conn net.Conn) {
	defer conn.Close()

	data, err := io.ReadAll(conn)
	if err != nil {
		l.Logger.Warn("control channel read error", "err", err)
		return
	}

	cmds, err := ParseControlMessage(data)
	if err != nil {
		l.Logger.Warn("control channel parse error", "err", err, "input", string(data))
		return
	}

	for _, cmd := range cmds {
		l.Logger.Info("control channel command accepted", "command", fmt.Sprintf("%T", cmd))
		l.Broadcast.Publish(cmd)
	}
}

// FaderEnvelope is the typed "fader" message: any subset of
// {muted, source, mic_type, level}, each becoming one RodeCommand in the
// fixed order muted -> source -> mic_type -> level.
type FaderEnvelope struct {
	Fader   string   `json:"fader"`
	Muted   *bool    `json:"muted,omitempty"`
	Source  *string  `json:"source,omitempty"`
	MicType *int32   `json:"mic_type,omitempty"`
	Level   *float64 `json:"level,omitempty"`
}

// MixEnvelope is the typed "mix" message.
type MixEnvelope struct {
	Action string `json:"action"`
	Mix    string `json:"mix"`
	Source string `json:"source"`
}

type typedEnvelope struct {
	Type    string   `json:"type"`
	Fader   string   `json:"fader"`
	Muted   *bool    `json:"muted,omitempty"`
	Source  *string  `json:"source,omitempty"`
	MicType *int32   `json:"mic_type,omitempty"`
	Level   *float64 `json:"level,omitempty"`
	Action  string   `json:"action,omitempty"`
	Mix     string   `json:"mix,omitempty"`
}

// ParseControlMessage decodes one control-channel message into zero or
// more RodeCommand values, trying the typed JSON grammar first and
// falling back to the legacy whitespace grammar when data is not JSON.
// A JSON message that is rejected by the typed grammar returns that error.
func ParseControlMessage(data []byte) ([]RodeCommand, error) {
	if json.Valid(data) {
		return parseTypedMessage(data)
	}
	return parseLegacyMessage(data)
}

func parseTypedMessage(data []byte) ([]RodeCommand, error) {
	var env typedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case "touch":
		return []RodeCommand{TouchCommand{}}, nil

	case "mix":
		mix, err := ParseMixOutput(env.Mix)
		if err != nil {
			return nil, err
		}
		src, err := ParseSource(env.Source)
		if err != nil {
			return nil, err
		}
		action, err := parseMixAction(env.Action)
		if err != nil {
			return nil, err
		}
		if src.IsCallMe() && action == MixDisable {
			return nil, ErrCallMeDisableUnsupported
		}
		return []RodeCommand{MixCommand{Action: action, Mix: mix, Source: src}}, nil

	case "fader":
		fader, err := ParseFader(env.Fader)
		if err != nil {
			return nil, err
		}
		var cmds []RodeCommand
		if env.Muted != nil {
			cmds = append(cmds, MuteCommand{Fader: fader, Mute: *env.Muted})
		}
		if env.Source != nil {
			src, err := ParseSource(*env.Source)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, SetSourceCommand{Fader: fader, Source: src})
		}
		if env.MicType != nil {
			cmds = append(cmds, SetMicTypeCommand{Fader: fader, MicType: MicTypeFromInt32(*env.MicType)})
		}
		if env.Level != nil {
			cmds = append(cmds, SetLevelCommand{Fader: fader, Level: LevelFromUnit(*env.Level)})
		}
		return cmds, nil

	default:
		return nil, fmt.Errorf("unknown typed message: %q", env.Type)
	}
}

func parseMixAction(s string) (MixAction, error) {
	switch strings.ToLower(s) {
	case "link":
		return MixLink, nil
	case "unlink":
		return MixUnlink, nil
	case "disable":
		return MixDisable, nil
	default:
		return 0, fmt.Errorf("unknown mix action: %q", s)
	}
}

func parseLegacyMessage(data []byte) ([]RodeCommand, error) {
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty control message")
	}

	switch fields[0] {
	case "mute":
		if len(fields) < 3 {
			return nil, fmt.Errorf("mute: expected 2 arguments")
		}
		fader, err := parseFaderIndexArg(fields[1])
		if err != nil {
			return nil, err
		}
		state, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("mute: invalid state: %w", err)
		}
		return []RodeCommand{MuteCommand{Fader: fader, Mute: state != 0}}, nil

	case "source":
		if len(fields) < 3 {
			return nil, fmt.Errorf("source: expected 2 arguments")
		}
		fader, err := parseFaderIndexArg(fields[1])
		if err != nil {
			return nil, err
		}
		srcID, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("source: invalid source id: %w", err)
		}
		src, ok := SourceByIndex(byte(srcID))
		if !ok {
			return nil, fmt.Errorf("source: unknown source index %d", srcID)
		}
		return []RodeCommand{SetSourceCommand{Fader: fader, Source: src}}, nil

	case "level":
		if len(fields) < 3 {
			return nil, fmt.Errorf("level: expected 2 arguments")
		}
		fader, err := parseFaderIndexArg(fields[1])
		if err != nil {
			return nil, err
		}
		level, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("level: invalid level: %w", err)
		}
		return []RodeCommand{SetLevelCommand{Fader: fader, Level: uint32(level)}}, nil

	case "mic_type":
		if len(fields) < 3 {
			return nil, fmt.Errorf("mic_type: expected 2 arguments")
		}
		fader, err := parseFaderIndexArg(fields[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("mic_type: invalid value: %w", err)
		}
		return []RodeCommand{SetMicTypeCommand{Fader: fader, MicType: MicTypeFromInt32(int32(val))}}, nil

	case "touch":
		return []RodeCommand{TouchCommand{}}, nil

	case "mix_link", "mix_unlink":
		mix, src, err := parseMixIndexArgs(fields)
		if err != nil {
			return nil, err
		}
		action := MixLink
		if fields[0] == "mix_unlink" {
			action = MixUnlink
		}
		return []RodeCommand{MixCommand{Action: action, Mix: mix, Source: src}}, nil

	case "mix_disable":
		mix, src, err := parseMixIndexArgs(fields)
		if err != nil {
			return nil, err
		}
		if src.IsCallMe() {
			return nil, ErrCallMeDisableUnsupported
		}
		return []RodeCommand{MixCommand{Action: MixDisable, Mix: mix, Source: src}}, nil

	case "callme_link", "callme_unlink":
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s: expected 2 arguments", fields[0])
		}
		mixIdx, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid mix index: %w", fields[0], err)
		}
		mix, ok := MixOutputByIndex(byte(mixIdx))
		if !ok {
			return nil, fmt.Errorf("%s: unknown mix index %d", fields[0], mixIdx)
		}
		callMeIdx, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid callme index: %w", fields[0], err)
		}
		src, ok := SourceByCallMeIndex(byte(callMeIdx))
		if !ok {
			return nil, fmt.Errorf("%s: unknown callme index %d", fields[0], callMeIdx)
		}
		action := MixLink
		if fields[0] == "callme_unlink" {
			action = MixUnlink
		}
		return []RodeCommand{MixCommand{Action: action, Mix: mix, Source: src}}, nil

	default:
		return nil, fmt.Errorf("unknown command verb: %q", fields[0])
	}
}

func parseFaderIndexArg(s string) (Fader, error) {
	idx, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid fader index: %w", err)
	}
	fader, ok := FaderByIndex(byte(idx))
	if !ok {
		return 0, fmt.Errorf("unknown fader index %d", idx)
	}
	return fader, nil
}

func parseMixIndexArgs(fields []string) (MixOutput, Source, error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("%s: expected 2 arguments", fields[0])
	}
	mixIdx, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: invalid mix index: %w", fields[0], err)
	}
	mix, ok := MixOutputByIndex(byte(mixIdx))
	if !ok {
		return 0, 0, fmt.Errorf("%s: unknown mix index %d", fields[0], mixIdx)
	}
	srcIdx, err := strconv.ParseUint(fields[2], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: invalid source index: %w", fields[0], err)
	}
	src, ok := SourceByIndex(byte(srcIdx))
	if !ok {
		return 0, 0, fmt.Errorf("%s: unknown source index %d", fields[0], srcIdx)
	}
	return mix, src, nil
}
