// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fido-device-onboard/serial-number/internal/serialnumber"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func loadStringFromConfig(cmd *cobra.Command, flagName, viperKey string, target *string) {
	if !cmd.Flags().Changed(flagName) && viper.IsSet(viperKey) {
		*target = viper.GetString(viperKey)
	}
}

func loadBoolFromConfig(cmd *cobra.Command, flagName, viperKey string, target *bool) {
	if !cmd.Flags().Changed(flagName) && viper.IsSet(viperKey) {
		*target = viper.GetBool(viperKey)
	}
}

func loadDurationFromConfig(cmd *cobra.Command, flagName, viperKey string, target *time.Duration) {
	if !cmd.Flags().Changed(flagName) && viper.IsSet(viperKey) {
		*target = viper.GetDuration(viperKey)
	}
}

func bindFlags(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" {
			return
		}
		if err := viper.BindPFlag(flag.Name, flag); err != nil {
			bindErr = err
		}
	})
	return bindErr
}

// SerialNumberConfig contains global configuration options
type SerialNumberConfig struct {
	Debug        bool          `mapstructure:"debug"`
	LogFile      string        `mapstructure:"log-file"`
	Backend      string        `mapstructure:"backend"`
	IoregPath    string        `mapstructure:"ioreg-path"`
	IoregTimeout time.Duration `mapstructure:"ioreg-timeout"`
}

func (c *SerialNumberConfig) validate() error {
	if !slices.Contains(serialnumber.Backends, c.Backend) {
		return fmt.Errorf("invalid --backend: '%s' [options: %s]", c.Backend, strings.Join(serialnumber.Backends, ", "))
	}
	if c.IoregTimeout <= 0 {
		return fmt.Errorf("invalid --ioreg-timeout: %s, must be positive", c.IoregTimeout)
	}
	return nil
}
