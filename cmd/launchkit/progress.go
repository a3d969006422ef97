//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.bug.st/launchkit/fetch"
	"golang.org/x/term"
)

const progressRefresh = 100 * time.Millisecond

// progressPrinter draws a single updating line on a terminal, or a summary
// line when done if w is not a terminal.
type progressPrinter struct {
	w     io.Writer
	tty   bool
	last  time.Time
	start time.Time
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{w: w, tty: tty, start: time.Now()}
}

func (p *progressPrinter) progressFunc(quiet bool) fetch.ProgressFunc {
	if quiet {
		return fetch.NopProgress
	}
	return p.update
}

func (p *progressPrinter) update(total, current int64, done bool) {
	if done {
		if p.tty {
			fmt.Fprint(p.w, "\r\033[K")
		}
		fmt.Fprintf(p.w, "%s transferred in %s\n", humanize.Bytes(uint64(current)), time.Since(p.start).Round(time.Millisecond))
		return
	}
	if !p.tty || time.Since(p.last) < progressRefresh {
		return
	}
	p.last = time.Now()
	if total > 0 {
		fmt.Fprintf(p.w, "\r\033[K%s / %s (%.1f%%)", humanize.Bytes(uint64(current)), humanize.Bytes(uint64(total)), float64(current)*100/float64(total))
	} else {
		fmt.Fprintf(p.w, "\r\033[K%s", humanize.Bytes(uint64(current)))
	}
}
