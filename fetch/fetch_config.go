//
// Copyright 2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package fetch

import (
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultUserAgent is sent with every request unless Config.UserAgent is set.
const DefaultUserAgent = "launchkit/1.0.0"

// Config contains the configuration for the HTTP helpers
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// UserAgent identifies the client to the server. If empty
	// DefaultUserAgent is used.
	UserAgent string
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// InactivityTimeout is the duration after which, if no data is received,
	// the transfer is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// RateLimit caps the response body transfer rate in bytes per second.
	// If set to 0, the transfer is not throttled.
	RateLimit int64
	// Logger receives a debug entry for every completed or failed request.
	// If nil the logrus standard logger is used.
	Logger logrus.FieldLogger
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the package
// level functions Get, Post and DownloadFile.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// deep copy struct
	res := defaultConfig
	if defaultConfig.ExtraHeaders != nil {
		res.ExtraHeaders = make(map[string]string, len(defaultConfig.ExtraHeaders))
		for k, v := range defaultConfig.ExtraHeaders {
			res.ExtraHeaders[k] = v
		}
	}
	return res
}

func (c *Config) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
