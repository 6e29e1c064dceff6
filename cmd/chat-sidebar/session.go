/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type sessionClient interface {
	CreateSession(ctx context.Context, name string) (sqlite.SessionRecord, error)
	ListSessions(ctx context.Context) ([]sqlite.SessionRecord, error)
}

// NewSessionCmd creates the session command with explicit dependencies.
func NewSessionCmd(client sessionClient) *cobra.Command {
	if client == nil {
		panic(fmt.Errorf("NewSessionCmd: %w", errNoClient))
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
		Long: `Manage sessions. Each session owns its chats and chat folders.

EXAMPLES:
    chat-sidebar session add Work
    chat-sidebar session list`,
	}

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := client.CreateSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
			return nil
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := client.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ID, rec.Name, rec.CreatedAt)
			}
			return w.Flush()
		},
	})

	return sessionCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSessionCmd(client))
}
