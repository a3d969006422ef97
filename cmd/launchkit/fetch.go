//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.bug.st/launchkit/fetch"
)

// Settings keys read by the transfer commands.
const (
	keyUserAgent         = "http.user-agent"
	keyInactivityTimeout = "http.inactivity-timeout"
	keyRateLimit         = "http.rate-limit"
)

type transferFlags struct {
	timeout   time.Duration
	rateLimit string
}

func (f *transferFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort when no data is received for this long (overrides "+keyInactivityTimeout+")")
	cmd.Flags().StringVar(&f.rateLimit, "rate-limit", "", "maximum transfer rate per second, e.g. 500KB (overrides "+keyRateLimit+")")
}

// client builds a fetch.Client from the settings file, the environment and
// the command flags, in increasing order of precedence.
func (a *app) client(cmd *cobra.Command, f *transferFlags) (*fetch.Client, error) {
	s, err := a.openSettings()
	if err != nil {
		return nil, err
	}

	cfg := fetch.Config{
		UserAgent:         s.StringOr(keyUserAgent, fetch.DefaultUserAgent),
		InactivityTimeout: time.Duration(s.IntOr(keyInactivityTimeout, 0)) * time.Second,
		RateLimit:         s.Int64Or(keyRateLimit, 0),
		Logger:            a.log,
	}
	if a.env.UserAgent != "" {
		cfg.UserAgent = a.env.UserAgent
	}
	if cmd.Flags().Changed("timeout") {
		cfg.InactivityTimeout = f.timeout
	}
	if cmd.Flags().Changed("rate-limit") {
		limit, err := humanize.ParseBytes(f.rateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit: %w", err)
		}
		cfg.RateLimit = int64(limit)
	}
	return fetch.New(cfg), nil
}

func newGetCmd(a *app) *cobra.Command {
	var flags transferFlags
	var output string
	var fail bool

	cmd := &cobra.Command{
		Use:   "get <url>",
		Short: "Fetch a URL and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd, &flags)
			if err != nil {
				return err
			}
			progress := newProgressPrinter(cmd.ErrOrStderr())
			resp, err := c.Fetch(cmd.Context(), http.MethodGet, args[0], "", nil, progress.progressFunc(a.quiet || output == ""))
			if err != nil {
				return err
			}
			if err := writeBody(cmd, output, resp.Body); err != nil {
				return err
			}
			if fail && resp.StatusCode >= 400 {
				return fmt.Errorf("server returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the body to this file instead of stdout")
	cmd.Flags().BoolVar(&fail, "fail", false, "exit with an error if the server returns a status >= 400")
	return cmd
}

func newPostCmd(a *app) *cobra.Command {
	var flags transferFlags
	var contentType, data, dataFile, output string

	cmd := &cobra.Command{
		Use:   "post <url>",
		Short: "Send data with a POST request and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := []byte(data)
			if dataFile != "" {
				if data != "" {
					return fmt.Errorf("--data and --data-file are mutually exclusive")
				}
				var err error
				if payload, err = os.ReadFile(dataFile); err != nil {
					return err
				}
			}
			c, err := a.client(cmd, &flags)
			if err != nil {
				return err
			}
			body, err := c.Post(cmd.Context(), args[0], contentType, payload)
			if err != nil {
				return err
			}
			return writeBody(cmd, output, body)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&contentType, "content-type", "t", "application/json", "Content-Type of the payload")
	cmd.Flags().StringVarP(&data, "data", "d", "", "payload to send")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "read the payload from this file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the body to this file instead of stdout")
	return cmd
}

func newDownloadCmd(a *app) *cobra.Command {
	var flags transferFlags

	cmd := &cobra.Command{
		Use:   "download <url> <dest>",
		Short: "Download a URL to a file, creating missing directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd, &flags)
			if err != nil {
				return err
			}
			progress := newProgressPrinter(cmd.ErrOrStderr())
			return c.DownloadFile(cmd.Context(), args[0], args[1], progress.progressFunc(a.quiet))
		},
	}
	flags.register(cmd)
	return cmd
}

func writeBody(cmd *cobra.Command, output string, body []byte) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	return os.WriteFile(output, body, 0644)
}
