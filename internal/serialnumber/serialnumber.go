// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package serialnumber reads the hardware serial number of a Mac from the
// I/O Kit registry.
//
// Every failure, from a missing registry on the host platform to a property
// of the wrong type, is reported the same way: no serial number. The reason
// is only visible in debug logs.
package serialnumber

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// PlatformExpertDevice is the registry class of the top level
	// platform device entry.
	PlatformExpertDevice = "IOPlatformExpertDevice"
	// PlatformSerialNumberKey is the property holding the serial number.
	PlatformSerialNumberKey = "IOPlatformSerialNumber"
)

const (
	BackendAuto  = "auto"
	BackendIOKit = "iokit"
	BackendIoreg = "ioreg"
)

// Backends lists the registry backends accepted by NewRegistry.
var Backends = []string{BackendAuto, BackendIOKit, BackendIoreg}

var (
	ErrUnsupported     = errors.New("platform registry is not supported on this host")
	ErrRegistry        = errors.New("platform registry query failed")
	ErrNoMatchingEntry = errors.New("no matching registry entry")
	ErrNoProperty      = errors.New("registry entry has no such property")
)

// Registry looks up a property on the first registry entry of a class.
type Registry interface {
	Lookup(class, key string) (Value, error)
}

// NewRegistry returns the registry backend with the given name. The auto
// backend picks the best backend available for the host.
func NewRegistry(backend string, opts ...IoregOption) (Registry, error) {
	switch backend {
	case BackendAuto, "":
		return defaultRegistry(opts...), nil
	case BackendIOKit:
		return newIOKitRegistry(), nil
	case BackendIoreg:
		return newIoregRegistry(opts...), nil
	default:
		return nil, fmt.Errorf("unknown registry backend %q", backend)
	}
}

// Reader reads the platform serial number from a registry.
type Reader struct {
	// Registry defaults to the host's automatic backend.
	Registry Registry
}

// SerialNumber returns the platform serial number, or false if it cannot be
// read for any reason.
func (r Reader) SerialNumber() (string, bool) {
	registry := r.Registry
	if registry == nil {
		registry = defaultRegistry()
	}

	value, err := lookup(registry)
	if err != nil {
		slog.Debug("platform serial number unavailable", "error", err)
		return "", false
	}

	serial, ok := Extract(value)
	if !ok {
		slog.Debug("platform serial number rejected", "value", value.String())
	}
	return serial, ok
}

// SerialNumber returns the platform serial number using the host's
// automatic backend.
func SerialNumber() (string, bool) {
	return Reader{}.SerialNumber()
}

func lookup(registry Registry) (value Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = Absent(), fmt.Errorf("%w: %v", ErrRegistry, r)
		}
	}()
	return registry.Lookup(PlatformExpertDevice, PlatformSerialNumberKey)
}

type unsupportedRegistry struct {
	reason string
}

func (r unsupportedRegistry) Lookup(class, key string) (Value, error) {
	return Absent(), fmt.Errorf("%w: %s", ErrUnsupported, r.reason)
}
