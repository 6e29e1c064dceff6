/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type chatClient interface {
	FindSession(ctx context.Context, idOrName string) (sqlite.SessionRecord, error)
	AddChat(ctx context.Context, sessionID, title string, archived bool) (int64, error)
	SetArchived(ctx context.Context, chatID int64, archived bool) error
	SetUnread(ctx context.Context, chatID int64, unread int) error
}

// NewChatCmd creates the chat command with explicit dependencies.
func NewChatCmd(client chatClient) *cobra.Command {
	if client == nil {
		panic(fmt.Errorf("NewChatCmd: %w", errNoClient))
	}

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Manage chats of a session",
		Long: `Manage chats of a session.

EXAMPLES:
    chat-sidebar chat add --session Work "Release planning"
    chat-sidebar chat archive 12
    chat-sidebar chat unread 12 3`,
	}

	var sessionRef string
	var archived bool
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := client.FindSession(cmd.Context(), sessionRef)
			if err != nil {
				return err
			}
			id, err := client.AddChat(cmd.Context(), rec.ID, args[0], archived)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&sessionRef, "session", "s", "", "Session ID or name")
	addCmd.Flags().BoolVar(&archived, "archived", false, "Create the chat archived")
	_ = addCmd.MarkFlagRequired("session")

	chatCmd.AddCommand(
		addCmd,
		newSetArchivedCmd(client, "archive", "Archive a chat", true),
		newSetArchivedCmd(client, "unarchive", "Move a chat back to the chat list", false),
		&cobra.Command{
			Use:   "unread <chat-id> <count>",
			Short: "Set the unread count of a chat",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid unread count %q", args[1])
				}
				return client.SetUnread(cmd.Context(), id, n)
			},
		},
	)
	return chatCmd
}

func newSetArchivedCmd(client chatClient, use, short string, archived bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <chat-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return client.SetArchived(cmd.Context(), id, archived)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewChatCmd(client))
}
