// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package serialnumber

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/samber/lo"
	"howett.net/plist"
)

const (
	DefaultIoregTimeout = 5 * time.Second

	// Used when PATH does not include /usr/sbin.
	fallbackIoregPath = "/usr/sbin/ioreg"
)

// IoregOption configures the ioreg backend.
type IoregOption func(*ioregRegistry)

// WithIoregPath sets the ioreg binary to run instead of looking it up.
func WithIoregPath(path string) IoregOption {
	return func(r *ioregRegistry) {
		r.path = path
	}
}

// WithIoregTimeout bounds each ioreg run.
func WithIoregTimeout(timeout time.Duration) IoregOption {
	return func(r *ioregRegistry) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithContext sets the parent context of each ioreg run.
func WithContext(ctx context.Context) IoregOption {
	return func(r *ioregRegistry) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// ioregRegistry queries the registry through the ioreg command and decodes
// its plist output.
type ioregRegistry struct {
	path    string
	timeout time.Duration
	ctx     context.Context
	run     func(ctx context.Context, name string, args ...string) ([]byte, error)
	check   func() error
}

func newIoregRegistry(opts ...IoregOption) *ioregRegistry {
	r := &ioregRegistry{
		timeout: DefaultIoregTimeout,
		ctx:     context.Background(),
		run:     runCommand,
		check:   checkHost,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (r *ioregRegistry) binary() string {
	if r.path != "" {
		return r.path
	}
	if path, err := exec.LookPath("ioreg"); err == nil {
		return path
	}
	return fallbackIoregPath
}

func (r *ioregRegistry) Lookup(class, key string) (Value, error) {
	if err := r.check(); err != nil {
		return Absent(), err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	output, err := r.run(ctx, r.binary(), "-a", "-r", "-d1", "-c", class)
	if err != nil {
		return Absent(), fmt.Errorf("%w: running ioreg: %v", ErrRegistry, err)
	}
	return decodeIoregEntry(output, class, key)
}

// decodeIoregEntry finds key in the first entry of an `ioreg -a -r` listing
// that carries it.
func decodeIoregEntry(output []byte, class, key string) (Value, error) {
	if len(bytes.TrimSpace(output)) == 0 {
		return Absent(), fmt.Errorf("%w: %s", ErrNoMatchingEntry, class)
	}

	var entries []map[string]any
	if _, err := plist.Unmarshal(output, &entries); err != nil {
		return Absent(), fmt.Errorf("%w: decoding ioreg output: %v", ErrRegistry, err)
	}
	if len(entries) == 0 {
		return Absent(), fmt.Errorf("%w: %s", ErrNoMatchingEntry, class)
	}

	entry, ok := lo.Find(entries, func(entry map[string]any) bool {
		_, ok := entry[key]
		return ok
	})
	if !ok {
		return Absent(), fmt.Errorf("%w: %s", ErrNoProperty, key)
	}
	return ValueOf(entry[key]), nil
}
