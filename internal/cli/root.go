// Package cli implements vdoctl, a small operator tool for a running
// signaling server.
package cli

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3001"

type rootOptions struct {
	server   string
	logLevel string
	timeout  time.Duration
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "vdoctl",
		Short:        "Inspect and exercise a VdoCall signaling server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			zerolog.SetGlobalLevel(lvl)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})
			return nil
		},
	}

	server := os.Getenv("VDOCALL_SERVER")
	if server == "" {
		server = defaultServer
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "base URL of the signaling server")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "HTTP request timeout")

	cmd.AddCommand(newRoomsCmd(opts), newICECmd(opts), newJoinCmd(opts))
	return cmd
}

// wsURL maps the HTTP base URL onto the signaling WebSocket endpoint.
func wsURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/ws/signal"
	return u.String(), nil
}
