/*
 * MIT License
 *
 * Copyright (c) 2024 packrs contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package logger wraps logrus with the leveled, field-structured API the
// rest of packrs calls into, trimmed from the teacher's multi-sink logger to
// the one sink this CLI actually needs: stderr.
package logger

import "github.com/sirupsen/logrus"

// Level mirrors the subset of logrus levels packrs exposes.
type Level uint32

const (
	LevelDebug Level = Level(logrus.DebugLevel)
	LevelInfo  Level = Level(logrus.InfoLevel)
	LevelWarn  Level = Level(logrus.WarnLevel)
	LevelError Level = Level(logrus.ErrorLevel)
)

// ParseLevel converts a level name (as accepted on --log-level) to a Level,
// defaulting to LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return LevelInfo
	}
	return Level(lvl)
}

// Fields attaches structured key/value context to a log entry.
type Fields map[string]interface{}

// Logger is the logging surface every packrs package is handed.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
}
