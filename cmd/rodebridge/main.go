package main

/*------------------------------------------------------------------
 *
 * Purpose:	The proxy daemon. Binds a local TCP listener in place of
 *		the real RodeCaster, splices each accepted connection to
 *		the real device, and accepts injected commands from the
 *		local control channel.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Yeradon/rodecaster-tcp-bridge-controller/internal/bridge"
)

func main() {
	defaults := bridge.DefaultConfig()

	bindIP := pflag.String("bind-ip", defaults.BindIP, "Local address to listen on in place of the real device.")
	bindPort := pflag.Int("bind-port", defaults.BindPort, "Local port to listen on.")
	targetIP := pflag.String("target-ip", defaults.TargetIP, "Address of the real device.")
	targetPort := pflag.Int("target-port", defaults.TargetPort, "Port of the real device.")
	sourceIP := pflag.String("source-ip", defaults.SourceIP, "Local address to bind the outgoing connection to the device.")
	controlSocket := pflag.String("control-socket", defaults.ControlSocket, "Unix socket path for the local control channel.")
	configPath := pflag.String("config", "", "Optional YAML overlay file for the above settings.")
	logLevel := pflag.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rodebridge [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg := bridge.Config{
		BindIP:        *bindIP,
		BindPort:      *bindPort,
		TargetIP:      *targetIP,
		TargetPort:    *targetPort,
		SourceIP:      *sourceIP,
		ControlSocket: *controlSocket,
		LogLevel:      *logLevel,
	}

	cfg, err := bridge.LoadOverlay(cfg, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rodebridge: %s\n", err)
		os.Exit(1)
	}
	bridge.LoadAliasOverlay(cfg)

	logger := bridge.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broadcast := bridge.NewBroadcaster()

	control := bridge.NewControlListener(cfg.ControlSocket, broadcast, logger)
	go func() {
		if err := control.Serve(ctx); err != nil {
			logger.Error("control channel exited", "err", err)
			os.Exit(1)
		}
	}()

	proxy := bridge.NewProxy(cfg, broadcast, logger)
	if err := proxy.Serve(ctx); err != nil {
		logger.Error("proxy exited", "err", err)
		os.Exit(1)
	}
}
