package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newRoomsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms [room-id]",
		Short: "List rooms with their occupancy and queue length",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			api := newAPIClient(opts.server, &http.Client{Timeout: opts.timeout})

			if len(args) == 1 {
				room, err := api.Room(ctx, args[0])
				if errors.Is(err, ErrRoomNotFound) {
					return fmt.Errorf("room %q not found", args[0])
				}
				if err != nil {
					return err
				}
				RenderRooms(cmd.OutOrStdout(), []Room{room})
				return nil
			}

			rooms, err := api.Rooms(ctx)
			if err != nil {
				return err
			}
			RenderRooms(cmd.OutOrStdout(), rooms)
			return nil
		},
	}
}

func RenderRooms(w io.Writer, rooms []Room) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Room", "Users", "Queue"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	total := 0
	for _, r := range rooms {
		t.AppendRow(table.Row{r.ID, fmt.Sprintf("%d/2", r.UserCount), r.QueueLength})
		total += r.UserCount + r.QueueLength
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rooms", len(rooms)), "", total})
	t.Render()
}

func newICECmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ice",
		Short: "Show the ICE servers handed to browsers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			servers, err := newAPIClient(opts.server, &http.Client{Timeout: opts.timeout}).ICEServers(ctx)
			if err != nil {
				return err
			}
			RenderICEServers(cmd.OutOrStdout(), servers)
			return nil
		},
	}
}

func RenderICEServers(w io.Writer, servers []ICEServer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"URLs", "Username", "Auth"})
	for _, s := range servers {
		auth := "none"
		if s.Credential != nil {
			auth = "password"
		}
		t.AppendRow(table.Row{strings.Join(s.URLs, "\n"), s.Username, auth})
	}
	t.Render()
}
