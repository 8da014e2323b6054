//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{LevelDebug, zapcore.DebugLevel},
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
		{LevelFatal, zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		SetLevel(tt.level)
		assert.Equal(t, tt.want, zapLevel.Level(), "level %q", tt.level)
	}
	SetLevel(LevelInfo)
}

func TestPackageLevelHelpersDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Debug("debug")
		Debugf("debug %d", 1)
		Info("info")
		Infof("info %d", 2)
		Warn("warn")
		Warnf("warn %d", 3)
		Error("error")
		Errorf("error %d", 4)
	})
}
