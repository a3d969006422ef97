//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package fetch

// ProgressFunc is called during a transfer. total is the size announced by
// the server (or -1 if unknown), current is the number of bytes transferred
// so far. The last call of a successful transfer has done set to true.
type ProgressFunc func(total, current int64, done bool)

// NopProgress is a ProgressFunc that does nothing.
func NopProgress(total, current int64, done bool) {}

func orNop(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return NopProgress
	}
	return progress
}
