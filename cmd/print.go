// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Printed by cobra as "Error: Unable to read Mac serial number".
var errSerialUnavailable = errors.New("Unable to read Mac serial number") //nolint:staticcheck

func printSerial(cmd *cobra.Command) error {
	serial, ok := getSerial(cmd.Context())
	if !ok {
		return errSerialUnavailable
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), serial)
	return err
}
