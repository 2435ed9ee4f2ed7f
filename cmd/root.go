// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fido-device-onboard/serial-number/internal/serialnumber"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	rootConfig SerialNumberConfig
)

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	Use:          "serial-number",
	Short:        "Print the hardware serial number of this Mac",
	Long: `Print the hardware serial number of this Mac.

The serial number is read from the IOPlatformSerialNumber property of the
IOPlatformExpertDevice entry in the I/O Kit registry and printed to standard
output. If it cannot be read, an error is printed to standard error and the
exit status is 1.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}

		// Update settings from viper (config file values if not set via CLI)
		loadBoolFromConfig(cmd, "debug", "debug", &rootConfig.Debug)
		loadStringFromConfig(cmd, "log-file", "log-file", &rootConfig.LogFile)
		loadStringFromConfig(cmd, "backend", "backend", &rootConfig.Backend)
		loadStringFromConfig(cmd, "ioreg-path", "ioreg-path", &rootConfig.IoregPath)
		loadDurationFromConfig(cmd, "ioreg-timeout", "ioreg-timeout", &rootConfig.IoregTimeout)

		if err := rootConfig.validate(); err != nil {
			return err
		}

		setupLogging(cmd.ErrOrStderr())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSerial(cmd)
	},
}

// Called by main to parse the command line and run the command
func Execute() error {
	// Catch interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		defer signal.Stop(sigs)
		select {
		case <-ctx.Done():
		case <-sigs:
			cancel()
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

func rootCmdInit() {
	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&configFile, "config", "", "Path to configuration file (YAML or TOML)")
	pflags.BoolVar(&rootConfig.Debug, "debug", false, "Log why the serial number could not be read")
	pflags.StringVar(&rootConfig.LogFile, "log-file", "", "Write logs to a rotating file instead of standard error")
	pflags.StringVar(&rootConfig.Backend, "backend", serialnumber.BackendAuto, "Registry backend [options: auto, iokit, ioreg]")
	pflags.StringVar(&rootConfig.IoregPath, "ioreg-path", "", "Path of the ioreg binary used by the ioreg backend")
	pflags.DurationVar(&rootConfig.IoregTimeout, "ioreg-timeout", serialnumber.DefaultIoregTimeout, "Maximum time the ioreg backend may run")

	// Bind global flags to viper
	if err := bindFlags(pflags); err != nil {
		panic(err)
	}
}

func init() {
	rootCmdInit()
}
