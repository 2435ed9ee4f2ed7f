// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cmd

import (
	"context"
	"log/slog"

	"github.com/fido-device-onboard/serial-number/internal/serialnumber"
)

// newRegistry is replaced in tests.
var newRegistry = func(ctx context.Context, conf SerialNumberConfig) (serialnumber.Registry, error) {
	return serialnumber.NewRegistry(conf.Backend,
		serialnumber.WithContext(ctx),
		serialnumber.WithIoregPath(conf.IoregPath),
		serialnumber.WithIoregTimeout(conf.IoregTimeout),
	)
}

func getSerial(ctx context.Context) (string, bool) {
	registry, err := newRegistry(ctx, rootConfig)
	if err != nil {
		slog.Debug("cannot create registry backend", "backend", rootConfig.Backend, "error", err)
		return "", false
	}
	return serialnumber.Reader{Registry: registry}.SerialNumber()
}
