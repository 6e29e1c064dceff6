/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type folderClient interface {
	FindSession(ctx context.Context, idOrName string) (sqlite.SessionRecord, error)
	AddFolder(ctx context.Context, sessionID, title string) (int64, error)
	AddChatToFolder(ctx context.Context, folderID, chatID int64) error
}

// NewFolderCmd creates the folder command with explicit dependencies.
func NewFolderCmd(client folderClient) *cobra.Command {
	if client == nil {
		panic(fmt.Errorf("NewFolderCmd: %w", errNoClient))
	}

	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage chat folders",
		Long: `Manage chat folders. The folder bar is shown once a session has a folder.

EXAMPLES:
    chat-sidebar folder add --session Work Team
    chat-sidebar folder assign 3 12`,
	}

	var sessionRef string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a chat folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := client.FindSession(cmd.Context(), sessionRef)
			if err != nil {
				return err
			}
			id, err := client.AddFolder(cmd.Context(), rec.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&sessionRef, "session", "s", "", "Session ID or name")
	_ = addCmd.MarkFlagRequired("session")

	assignCmd := &cobra.Command{
		Use:   "assign <folder-id> <chat-id>",
		Short: "Put a chat into a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			chatID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return client.AddChatToFolder(cmd.Context(), folderID, chatID)
		},
	}

	folderCmd.AddCommand(addCmd, assignCmd)
	return folderCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewFolderCmd(client))
}
