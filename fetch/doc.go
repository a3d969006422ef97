//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package fetch provides synchronous HTTP helpers (GET, POST and file
// download) with progress tracking and inactivity timeout support.
//
// The package level functions use the default configuration, see
// SetDefaultConfig. A Client can be used to apply a specific configuration
// and a context to each request.
package fetch
