/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type settingsClient interface {
	LoadSettings() (settings.Settings, error)
	GetSetting(key string) (bool, error)
	SetSetting(key string, v bool) error
}

var settingsCommandLong = `Manage sidebar settings.

USAGE:
    chat-sidebar settings <subcommand>

SUBCOMMANDS:
    show     Display current settings
    get      Print one setting
    set      Change one setting

KEYS:
    ` + strings.Join(settings.Keys(), "\n    ") + `

EXAMPLES:
    # Show the archived chats entry in the sidebar menu
    chat-sidebar settings set archive-row-in-main-menu true

    # Show current settings
    chat-sidebar settings show`

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(client settingsClient) *cobra.Command {
	if client == nil {
		panic(fmt.Errorf("NewSettingsCmd: %w", errNoClient))
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage sidebar settings",
		Long:  settingsCommandLong,
	}

	settingsCmd.AddCommand(
		newSettingsShowCmd(client),
		newSettingsGetCmd(client),
		newSettingsSetCmd(client),
	)
	return settingsCmd
}

func newSettingsShowCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.LoadSettings()
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			data, err := toml.Marshal(s)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSettingsGetCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := client.GetSetting(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(v))
			return nil
		},
	}
}

func newSettingsSetCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <true|false>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: expected true or false", args[1], args[0])
			}
			if err := client.SetSetting(args[0], v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", args[0], v)
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewSettingsCmd(client))
}
