//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DownloadFile downloads the specified url in the specified file using the
// default configuration. Missing parent directories of file are created.
func DownloadFile(reqURL string, file string) error {
	return DownloadFileWithProgress(reqURL, file, nil)
}

// DownloadFileWithProgress is like DownloadFile but calls progress after each
// segment written to disk.
func DownloadFileWithProgress(reqURL string, file string, progress ProgressFunc) error {
	return New(GetDefaultConfig()).DownloadFile(context.Background(), reqURL, file, progress)
}

// DownloadFile downloads the specified url in the specified file.
//
// The response body is streamed to a temporary file next to the destination,
// which is renamed over file only when the whole body has been received.
// If the download fails the temporary file is removed and file is left
// untouched. A non-2xx status code is reported as a *StatusError.
func (c *Client) DownloadFile(ctx context.Context, reqURL string, file string, progress ProgressFunc) error {
	progress = orNop(progress)
	start := time.Now()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	ctx, wd := newWatchdog(ctx, c.config.InactivityTimeout)
	defer wd.Cancel()

	req, err := c.newRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.config.HttpClient.Do(req)
	if err != nil {
		err = wd.Err(err)
		c.logResult(http.MethodGet, reqURL, 0, 0, start, err)
		return fmt.Errorf("performing GET request: %w", err)
	}
	defer resp.Body.Close()
	wd.Kick()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, bufferSize))
		err := &StatusError{URL: reqURL, StatusCode: resp.StatusCode, Status: resp.Status}
		c.logResult(http.MethodGet, reqURL, resp.StatusCode, 0, start, err)
		return err
	}

	tmpFile := filepath.Join(dir, "."+filepath.Base(file)+"."+uuid.NewString()+".part")
	out, err := os.OpenFile(tmpFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", tmpFile, err)
	}

	total := resp.ContentLength // -1 if server doesn't send Content-Length
	completed, err := c.transfer(ctx, wd, resp.Body, total, out, progress)
	if err == nil && total >= 0 && completed != total {
		err = io.ErrUnexpectedEOF
	}
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing output file: %w", cerr)
	}
	if err == nil {
		err = os.Rename(tmpFile, file)
	}
	if err != nil {
		_ = os.Remove(tmpFile)
		c.logResult(http.MethodGet, reqURL, resp.StatusCode, completed, start, err)
		return fmt.Errorf("downloading %s: %w", reqURL, err)
	}

	progress(total, completed, true)
	c.logResult(http.MethodGet, reqURL, resp.StatusCode, completed, start, nil)
	return nil
}
