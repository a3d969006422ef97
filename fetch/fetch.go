//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const bufferSize = 8192

// Client performs HTTP requests using a fixed Config. A Client holds no
// mutable state and can be used from multiple goroutines.
type Client struct {
	config Config
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode    int
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// StatusError is returned when the server answers with a non-2xx status code
// and the operation cannot use the response body.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// New returns a Client using the given configuration.
func New(config Config) *Client {
	return &Client{config: config}
}

// Get performs a GET request using the default configuration and returns the
// response body. The body is returned whatever the status code is.
func Get(reqURL string) ([]byte, error) {
	return GetWithProgress(reqURL, nil)
}

// GetWithProgress is like Get but calls progress after each chunk of the
// response body is read.
func GetWithProgress(reqURL string, progress ProgressFunc) ([]byte, error) {
	return New(GetDefaultConfig()).Get(context.Background(), reqURL, progress)
}

// Post performs a POST request using the default configuration, sending
// payload with the given content type, and returns the response body.
// The body is returned whatever the status code is.
func Post(reqURL string, contentType string, payload []byte) ([]byte, error) {
	return New(GetDefaultConfig()).Post(context.Background(), reqURL, contentType, payload)
}

// Get performs a GET request and returns the response body, error bodies
// included. progress may be nil.
func (c *Client) Get(ctx context.Context, reqURL string, progress ProgressFunc) ([]byte, error) {
	resp, err := c.Fetch(ctx, http.MethodGet, reqURL, "", nil, progress)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Post sends payload with a POST request and returns the response body,
// error bodies included.
func (c *Client) Post(ctx context.Context, reqURL string, contentType string, payload []byte) ([]byte, error) {
	if payload == nil {
		payload = []byte{}
	}
	resp, err := c.Fetch(ctx, http.MethodPost, reqURL, contentType, payload, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Fetch performs an HTTP request and reads the whole response body in memory.
// If payload is not nil it is sent as the request body, with contentType as
// Content-Type. The status code is not checked: callers can inspect it in the
// returned Response.
func (c *Client) Fetch(ctx context.Context, method, reqURL, contentType string, payload []byte, progress ProgressFunc) (*Response, error) {
	progress = orNop(progress)
	start := time.Now()

	ctx, wd := newWatchdog(ctx, c.config.InactivityTimeout)
	defer wd.Cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.ContentLength = int64(len(payload))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
	}

	resp, err := c.config.HttpClient.Do(req)
	if err != nil {
		err = wd.Err(err)
		c.logResult(method, reqURL, 0, 0, start, err)
		return nil, fmt.Errorf("performing %s request: %w", method, err)
	}
	defer resp.Body.Close()
	wd.Kick()

	var out bytes.Buffer
	completed, err := c.transfer(ctx, wd, resp.Body, resp.ContentLength, &out, progress)
	if err != nil {
		c.logResult(method, reqURL, resp.StatusCode, completed, start, err)
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	progress(resp.ContentLength, completed, true)
	c.logResult(method, reqURL, resp.StatusCode, completed, start, nil)

	return &Response{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Body:          out.Bytes(),
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("setting up %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", c.config.userAgent())
	for k, v := range c.config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	return req, nil
}

// transfer copies in to out in chunks of at most bufferSize bytes, calling
// progress after each chunk. The final "done" notification is left to the
// caller. It returns the number of bytes written to out.
func (c *Client) transfer(ctx context.Context, wd *watchdog, in io.Reader, total int64, out io.Writer, progress ProgressFunc) (int64, error) {
	var limiter *rate.Limiter
	if c.config.RateLimit > 0 {
		burst := int(c.config.RateLimit)
		if burst < bufferSize {
			burst = bufferSize
		}
		limiter = rate.NewLimiter(rate.Limit(c.config.RateLimit), burst)
	}

	var completed int64
	buff := make([]byte, bufferSize)
	for {
		n, err := in.Read(buff)
		if n > 0 {
			wd.Kick()
			if limiter != nil {
				if lerr := limiter.WaitN(ctx, n); lerr != nil {
					return completed, wd.Err(lerr)
				}
				wd.Kick()
			}
			if _, werr := out.Write(buff[:n]); werr != nil {
				return completed, werr
			}
			completed += int64(n)
			progress(total, completed, false)
		}
		if err == io.EOF {
			return completed, nil
		}
		if err != nil {
			return completed, wd.Err(err)
		}
	}
}

func (c *Client) logResult(method, reqURL string, status int, size int64, start time.Time, err error) {
	entry := c.config.logger().WithFields(logrus.Fields{
		"method":   method,
		"url":      reqURL,
		"status":   status,
		"size":     size,
		"duration": float64(time.Since(start).Microseconds()) / float64(1000),
	})
	if err != nil {
		entry.WithError(err).Debug("HTTP request failed")
		return
	}
	entry.Debug("HTTP request")
}
