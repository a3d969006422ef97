//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.bug.st/launchkit/settings"
)

// envConfig holds the defaults that can be set through the environment.
type envConfig struct {
	SettingsFile string `env:"LAUNCHKIT_SETTINGS"`
	LogLevel     string `env:"LAUNCHKIT_LOG_LEVEL" envDefault:"warn"`
	UserAgent    string `env:"LAUNCHKIT_USER_AGENT"`
}

// app carries the state shared by all subcommands.
type app struct {
	env          envConfig
	settingsFile string
	logLevel     string
	quiet        bool
	log          *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	cmd := &cobra.Command{
		Use:          "launchkit",
		Short:        "Download files and manage launcher settings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.settingsFile, "settings", "", "settings file (default $LAUNCHKIT_SETTINGS or <user config dir>/launchkit/settings.properties)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LAUNCHKIT_LOG_LEVEL or warn)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress progress output")

	cmd.AddCommand(newGetCmd(a))
	cmd.AddCommand(newPostCmd(a))
	cmd.AddCommand(newDownloadCmd(a))
	cmd.AddCommand(newSettingsCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if err := env.Parse(&a.env); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if a.settingsFile == "" {
		a.settingsFile = a.env.SettingsFile
	}
	if a.settingsFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locating settings: %w", err)
		}
		a.settingsFile = filepath.Join(dir, "launchkit", "settings.properties")
	}

	if a.logLevel == "" {
		a.logLevel = a.env.LogLevel
	}
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (a *app) openSettings() (*settings.Settings, error) {
	s, err := settings.Open(a.settingsFile)
	if err != nil {
		return nil, err
	}
	a.log.WithField("file", a.settingsFile).Debugf("loaded %d settings", s.Len())
	return s, nil
}
