// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package serialnumber

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
`

const platformExpertOutput = plistHeader + `<array>
	<dict>
		<key>IOBusyState</key>
		<integer>0</integer>
		<key>IOConsoleSecurityInterest</key>
		<dict/>
		<key>IOPlatformSerialNumber</key>
		<string>C02XK1ZZJGH5</string>
		<key>IOPlatformUUID</key>
		<string>9A7DB3B6-31D5-5B0A-9D52-3C5C5DCB4C0D</string>
		<key>model</key>
		<data>TWFjQm9va1BybzE2LDEA</data>
	</dict>
</array>
</plist>
`

func platformExpertWith(property string) string {
	return plistHeader + `<array>
	<dict>
		<key>IOPlatformUUID</key>
		<string>9A7DB3B6-31D5-5B0A-9D52-3C5C5DCB4C0D</string>
` + property + `
	</dict>
</array>
</plist>
`
}

func TestDecodeIoregEntry(t *testing.T) {
	value, err := decodeIoregEntry([]byte(platformExpertOutput), PlatformExpertDevice, PlatformSerialNumberKey)
	require.NoError(t, err)

	serial, ok := Extract(value)
	require.True(t, ok)
	require.Equal(t, "C02XK1ZZJGH5", serial)
}

func TestDecodeIoregEntryValueTypes(t *testing.T) {
	tests := []struct {
		name     string
		property string
		kind     Kind
	}{
		{"string", "<key>IOPlatformSerialNumber</key>\n<string>C02XK1ZZJGH5</string>", KindText},
		{"empty string", "<key>IOPlatformSerialNumber</key>\n<string></string>", KindText},
		{"integer", "<key>IOPlatformSerialNumber</key>\n<integer>42</integer>", KindOther},
		{"data", "<key>IOPlatformSerialNumber</key>\n<data>QzAyWEsxWlpKR0g1</data>", KindOther},
		{"bool", "<key>IOPlatformSerialNumber</key>\n<true/>", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := decodeIoregEntry([]byte(platformExpertWith(tt.property)), PlatformExpertDevice, PlatformSerialNumberKey)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, value.Kind())
		})
	}
}

func TestDecodeIoregEntryFailures(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
	}{
		{"no output", "", ErrNoMatchingEntry},
		{"empty array", plistHeader + "<array/>\n</plist>\n", ErrNoMatchingEntry},
		{"missing property", platformExpertWith(""), ErrNoProperty},
		{"malformed", "IOPlatformSerialNumber = C02XK1ZZJGH5", ErrRegistry},
		{"not an array", plistHeader + "<string>C02XK1ZZJGH5</string>\n</plist>\n", ErrRegistry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := decodeIoregEntry([]byte(tt.output), PlatformExpertDevice, PlatformSerialNumberKey)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, KindAbsent, value.Kind())
		})
	}
}

func TestIoregLookup(t *testing.T) {
	var gotName string
	var gotArgs []string
	var gotDeadline bool
	r := newIoregRegistry(WithIoregPath("/opt/ioreg"), WithIoregTimeout(time.Second))
	r.check = func() error { return nil }
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		_, gotDeadline = ctx.Deadline()
		return []byte(platformExpertOutput), nil
	}

	value, err := r.Lookup(PlatformExpertDevice, PlatformSerialNumberKey)
	require.NoError(t, err)
	assert.Equal(t, Text("C02XK1ZZJGH5"), value)
	assert.Equal(t, "/opt/ioreg", gotName)
	assert.Equal(t, []string{"-a", "-r", "-d1", "-c", PlatformExpertDevice}, gotArgs)
	assert.True(t, gotDeadline)
}

func TestIoregLookupCommandFailure(t *testing.T) {
	r := newIoregRegistry()
	r.check = func() error { return nil }
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	_, err := r.Lookup(PlatformExpertDevice, PlatformSerialNumberKey)
	require.ErrorIs(t, err, ErrRegistry)
}

func TestIoregLookupUnsupportedHost(t *testing.T) {
	r := newIoregRegistry()
	r.check = func() error { return ErrUnsupported }
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		t.Fatal("ioreg must not run on an unsupported host")
		return nil, nil
	}

	_, err := r.Lookup(PlatformExpertDevice, PlatformSerialNumberKey)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestIoregLookupCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newIoregRegistry(WithContext(ctx))
	r.check = func() error { return nil }
	r.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, ctx.Err()
	}

	_, err := r.Lookup(PlatformExpertDevice, PlatformSerialNumberKey)
	require.ErrorIs(t, err, ErrRegistry)
}

func TestIoregTimeoutIgnoresZero(t *testing.T) {
	r := newIoregRegistry(WithIoregTimeout(0))
	assert.Equal(t, DefaultIoregTimeout, r.timeout)
}
