//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.bug.st/launchkit/settings"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage settings",
		Long: `Manage launchkit settings.

Settings are stored as flat key-value pairs. The file format is chosen
from the extension of the settings file: .yaml/.yml, .toml, or
key=value properties for anything else.

Keys used by the transfer commands:
  http.user-agent          User-Agent sent with every request
  http.inactivity-timeout  seconds without data before a transfer is aborted
  http.rate-limit          maximum transfer rate in bytes per second`,
	}

	cmd.AddCommand(newSettingsGetCmd(a))
	cmd.AddCommand(newSettingsSetCmd(a))
	cmd.AddCommand(newSettingsListCmd(a))
	return cmd
}

func newSettingsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			v, err := s.String(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newSettingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting and save the settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			s.Set(args[0], args[1])
			if err := settings.SaveFile(s, a.settingsFile); err != nil {
				return err
			}
			a.log.WithField("file", a.settingsFile).Infof("set %s", args[0])
			return nil
		},
	}
}

func newSettingsListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.All())
			}
			for _, k := range s.Keys() {
				fmt.Fprintf(out, "%s = %s\n", k, s.StringOr(k, ""))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print settings as a JSON object")
	return cmd
}
