package main

/*------------------------------------------------------------------
 *
 * Purpose:	One-shot IPC client for the control channel. Sends a
 *		single legacy-grammar message and exits.
 *
 * Description:	Positional-argument dispatch (pflag.Arg(0) names the
 *		verb) rather than a subcommand-parsing library, matching
 *		the way cmd/samoyed-appserver reads its own command line.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Yeradon/rodecaster-tcp-bridge-controller/internal/bridge"
)

func main() {
	socketPath := pflag.String("control-socket", bridge.DefaultControlSocket, "Unix socket path for the control channel.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: bridgectl [options] <verb> <args...>

verbs:
  mute <fader_idx> <0|1>
  source <fader_idx> <u32>
  mic_type <fader_idx> <i32>
  level <fader_idx> <u32>
  touch
  mix_link <mix_idx> <source_idx>
  mix_unlink <mix_idx> <source_idx>
  mix_disable <mix_idx> <source_idx> <state>
  callme_link <mix_idx> <callme_idx>
  callme_unlink <mix_idx> <callme_idx>

options:
`)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() == 0 {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	message := strings.Join(pflag.Args(), " ")

	conn, err := net.Dial("unix", *socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bridgectl: connect: %s\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(message)); err != nil {
		fmt.Fprintf(os.Stderr, "bridgectl: write: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("sent: %s\n", message)
}
