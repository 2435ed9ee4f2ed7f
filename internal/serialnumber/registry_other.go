// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

//go:build !(darwin && cgo && !ios)

package serialnumber

import "runtime"

func newIOKitRegistry() Registry {
	if runtime.GOOS == "darwin" {
		return unsupportedRegistry{reason: "IOKit backend requires cgo"}
	}
	return unsupportedRegistry{reason: runtime.GOOS}
}

// Without cgo a Mac can still be queried through the ioreg command.
func defaultRegistry(opts ...IoregOption) Registry {
	if runtime.GOOS == "darwin" {
		return newIoregRegistry(opts...)
	}
	return unsupportedRegistry{reason: runtime.GOOS}
}
