// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package serialnumber

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hashicorp/go-version"
	"github.com/shirou/gopsutil/v4/host"
)

var minimumMacOS = version.Must(version.NewVersion("10.15"))

type platformInfoFunc func() (platform, family, platformVersion string, err error)

func checkHost() error {
	return checkPlatform(runtime.GOOS, host.PlatformInformation)
}

// checkPlatform fails with ErrUnsupported unless goos is darwin and the
// macOS release is new enough. An undeterminable release is accepted.
func checkPlatform(goos string, info platformInfoFunc) error {
	if goos != "darwin" {
		return fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}

	_, _, platformVersion, err := info()
	if err != nil || platformVersion == "" {
		slog.Debug("cannot determine macOS version", "error", err)
		return nil
	}
	v, err := version.NewVersion(platformVersion)
	if err != nil {
		slog.Debug("cannot parse macOS version", "version", platformVersion, "error", err)
		return nil
	}
	if v.LessThan(minimumMacOS) {
		return fmt.Errorf("%w: macOS %s is older than %s", ErrUnsupported, v, minimumMacOS)
	}
	return nil
}
