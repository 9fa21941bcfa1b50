package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Optional YAML overlay read at startup to override the
 *		proxy's bind/target addresses and entity name aliases.
 *
 * Description:	Entirely optional - if the path is empty or the file is
 *		absent, DefaultConfig() values stand untouched. Parse
 *		errors are returned to the caller rather than silently
 *		ignored, since a malformed overlay at startup is a
 *		category 4 error (spec §7), not a runtime one.
 *
 *		MixAliases/SourceAliases/FaderAliases map an operator's
 *		alias string to one of the canonical names ParseMixOutput,
 *		ParseSource, and ParseFader already accept (e.g. "studio":
 *		"headphone2"). A caller must pass the loaded Config to
 *		LoadAliasOverlay (names.go) before these take effect.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the proxy's full runtime configuration: command-line defaults
// overlaid by an optional YAML file.
type Config struct {
	BindIP        string            `yaml:"bind_ip"`
	BindPort      int               `yaml:"bind_port"`
	TargetIP      string            `yaml:"target_ip"`
	TargetPort    int               `yaml:"target_port"`
	SourceIP      string            `yaml:"source_ip"`
	ControlSocket string            `yaml:"control_socket"`
	LogLevel      string            `yaml:"log_level"`
	MixAliases    map[string]string `yaml:"mix_aliases,omitempty"`
	SourceAliases map[string]string `yaml:"source_aliases,omitempty"`
	FaderAliases  map[string]string `yaml:"fader_aliases,omitempty"`
}

// DefaultConfig returns the configuration spec.md §6 lists as defaults.
func DefaultConfig() Config {
	return Config{
		BindIP:        "127.0.0.2",
		BindPort:      9000,
		TargetIP:      "127.0.0.1",
		TargetPort:    2345,
		SourceIP:      "127.0.0.2",
		ControlSocket: "/tmp/socket_bridge_control",
		LogLevel:      "info",
	}
}

// LoadOverlay reads the YAML file at path, if path is non-empty and the
// file exists, and overlays any set fields onto cfg. A missing path is not
// an error - the overlay is optional. A present-but-unparsable file is.
func LoadOverlay(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config overlay %s: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("parsing config overlay %s: %w", path, err)
	}

	applyOverlay(&cfg, overlay)
	return cfg, nil
}

func applyOverlay(cfg *Config, overlay Config) {
	if overlay.BindIP != "" {
		cfg.BindIP = overlay.BindIP
	}
	if overlay.BindPort != 0 {
		cfg.BindPort = overlay.BindPort
	}
	if overlay.TargetIP != "" {
		cfg.TargetIP = overlay.TargetIP
	}
	if overlay.TargetPort != 0 {
		cfg.TargetPort = overlay.TargetPort
	}
	if overlay.SourceIP != "" {
		cfg.SourceIP = overlay.SourceIP
	}
	if overlay.ControlSocket != "" {
		cfg.ControlSocket = overlay.ControlSocket
	}
	if overlay.LogLevel != "" {
		cfg.LogLevel = overlay.LogLevel
	}
	if len(overlay.MixAliases) > 0 {
		cfg.MixAliases = overlay.MixAliases
	}
	if len(overlay.SourceAliases) > 0 {
		cfg.SourceAliases = overlay.SourceAliases
	}
	if len(overlay.FaderAliases) > 0 {
		cfg.FaderAliases = overlay.FaderAliases
	}
}
