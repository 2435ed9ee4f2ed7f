// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cmd

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
	"hermannm.dev/devlog"
)

var level slog.LevelVar

func setupLogging(stderr io.Writer) {
	if rootConfig.Debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	if rootConfig.LogFile == "" {
		slog.SetDefault(slog.New(devlog.NewHandler(stderr, &devlog.Options{Level: &level})))
		return
	}

	logFile := &lumberjack.Logger{
		Filename: rootConfig.LogFile,
		MaxSize:  10, // megabytes
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: &level})))
}
