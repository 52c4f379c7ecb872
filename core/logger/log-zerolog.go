// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var zeroLevels = map[LogLevel]zerolog.Level{
	LogDebug: zerolog.DebugLevel,
	LogInfo:  zerolog.InfoLevel,
	LogError: zerolog.ErrorLevel,
}

// ZeroLogger - JSON structured output, one object per line. Selected with LogFormat "json".
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewZeroLogger - writes to w, or stderr if w is nil. Fields are attached to every line.
func NewZeroLogger(w io.Writer, level LogLevel, fields map[string]string) *ZeroLogger {
	if w == nil {
		w = os.Stderr
	}

	ctx := zerolog.New(w).Level(zeroLevels[level]).With().Timestamp()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

func (l *ZeroLogger) Printf(level LogLevel, format string, a ...interface{}) {
	zlvl, ok := zeroLevels[level]
	if !ok {
		zlvl = zerolog.InfoLevel
	}
	l.zl.WithLevel(zlvl).Msg(fmt.Sprintf(format, a...))
}
func (l *ZeroLogger) Debugf(format string, a ...interface{}) {
	l.Printf(LogDebug, format, a...)
}
func (l *ZeroLogger) Infof(format string, a ...interface{}) {
	l.Printf(LogInfo, format, a...)
}
func (l *ZeroLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}
