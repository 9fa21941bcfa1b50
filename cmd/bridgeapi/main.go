package main

/*------------------------------------------------------------------
 *
 * Purpose:	Thin JSON-over-HTTP adapter translating REST calls into
 *		legacy-grammar messages on the control channel. Kept
 *		outside internal/bridge - the core library has no HTTP
 *		dependency.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/Yeradon/rodecaster-tcp-bridge-controller/internal/bridge"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeResponse(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, err string) {
	writeResponse(w, status, apiResponse{Success: false, Error: err})
}

func writeOK(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusOK, apiResponse{Success: true, Message: message})
}

type server struct {
	socketPath string
}

func (s *server) sendCommand(cmd string) error {
	conn, err := net.Dial("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("connecting to control channel: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("writing to control channel: %w", err)
	}
	return nil
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "bridgeapi is running")
}

type mixRequest struct {
	Action string `json:"action"`
	Mix    string `json:"mix"`
	Source string `json:"source"`
}

func (s *server) mix(w http.ResponseWriter, r *http.Request) {
	var req mixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mix, err := bridge.ParseMixOutput(req.Mix)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	source, err := bridge.ParseSource(req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var cmd, msg string
	if source.IsCallMe() {
		switch req.Action {
		case "link":
			cmd = fmt.Sprintf("callme_link %d %d", mix.Index(), source.Index())
			msg = fmt.Sprintf("linked %s to %s", source, mix)
		case "unlink":
			cmd = fmt.Sprintf("callme_unlink %d %d", mix.Index(), source.Index())
			msg = fmt.Sprintf("unlinked %s from %s", source, mix)
		default:
			writeError(w, http.StatusBadRequest, "disable/enable not supported for callme sources")
			return
		}
	} else {
		switch req.Action {
		case "link":
			cmd = fmt.Sprintf("mix_link %d %d", mix.Index(), source.Index())
			msg = fmt.Sprintf("linked %s to %s", source, mix)
		case "unlink":
			cmd = fmt.Sprintf("mix_unlink %d %d", mix.Index(), source.Index())
			msg = fmt.Sprintf("unlinked %s from %s", source, mix)
		case "disable":
			cmd = fmt.Sprintf("mix_disable %d %d 3", mix.Index(), source.Index())
			msg = fmt.Sprintf("disabled %s in %s", source, mix)
		case "enable":
			cmd = fmt.Sprintf("mix_disable %d %d 2", mix.Index(), source.Index())
			msg = fmt.Sprintf("enabled %s in %s", source, mix)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action: %q", req.Action))
			return
		}
	}

	if err := s.sendCommand(cmd); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w, msg)
}

type faderRequest struct {
	Fader   string   `json:"fader"`
	Muted   *bool    `json:"muted,omitempty"`
	Source  *string  `json:"source,omitempty"`
	MicType *int32   `json:"mic_type,omitempty"`
	Level   *float64 `json:"level,omitempty"`
}

func (s *server) fader(w http.ResponseWriter, r *http.Request) {
	var req faderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fader, err := bridge.ParseFader(req.Fader)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Muted != nil {
		state := 0
		action := "unmuted"
		if *req.Muted {
			state = 1
			action = "muted"
		}
		cmd := fmt.Sprintf("mute %d %d", fader.Index(), state)
		if err := s.sendCommand(cmd); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeOK(w, fmt.Sprintf("%s %s", action, fader))
		return
	}

	if req.Source != nil {
		source, err := bridge.ParseSource(*req.Source)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cmd := fmt.Sprintf("source %d %d", fader.Index(), source.Index())
		if err := s.sendCommand(cmd); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeOK(w, fmt.Sprintf("set %s source to %s", fader, source))
		return
	}

	if req.MicType != nil {
		cmd := fmt.Sprintf("mic_type %d %d", fader.Index(), *req.MicType)
		if err := s.sendCommand(cmd); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeOK(w, fmt.Sprintf("set %s mic type to %d", fader, *req.MicType))
		return
	}

	if req.Level != nil {
		levelVal := bridge.LevelFromUnit(*req.Level)
		cmd := fmt.Sprintf("level %d %d", fader.Index(), levelVal)
		if err := s.sendCommand(cmd); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeOK(w, fmt.Sprintf("set %s level to %.1f%%", fader, *req.Level*100))
		return
	}

	writeError(w, http.StatusBadRequest, "no action specified (muted, source, mic_type, or level)")
}

func main() {
	addr := pflag.String("listen", "0.0.0.0:8080", "HTTP listen address.")
	socketPath := pflag.String("control-socket", bridge.DefaultControlSocket, "Unix socket path for the control channel.")
	configPath := pflag.String("config", "", "Optional YAML overlay file for entity name aliases.")
	pflag.Parse()

	cfg, err := bridge.LoadOverlay(bridge.DefaultConfig(), *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bridgeapi: %s\n", err)
		os.Exit(1)
	}
	bridge.LoadAliasOverlay(cfg)

	s := &server{socketPath: *socketPath}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/mix", s.mix)
	mux.HandleFunc("/fader", s.fader)

	fmt.Printf("bridgeapi listening on %s\n", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "bridgeapi: %s\n", err)
		os.Exit(1)
	}
}
