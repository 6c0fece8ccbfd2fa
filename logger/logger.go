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

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing to w (os.Stderr in normal operation) at the
// given level.
func New(w io.Writer, lvl Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.Level(lvl))
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logger{l: l}
}

// NewStderr is the common case: a logger writing to os.Stderr.
func NewStderr(lvl Level) Logger {
	return New(os.Stderr, lvl)
}

func (g *logger) SetLevel(lvl Level) {
	g.l.SetLevel(logrus.Level(lvl))
}

func (g *logger) GetLevel() Level {
	return Level(g.l.GetLevel())
}

func (g *logger) Debug(msg string, fields Fields) {
	g.entry(fields).Debug(msg)
}

func (g *logger) Info(msg string, fields Fields) {
	g.entry(fields).Info(msg)
}

func (g *logger) Warn(msg string, fields Fields) {
	g.entry(fields).Warn(msg)
}

func (g *logger) Error(msg string, err error, fields Fields) {
	e := g.entry(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(msg)
}

func (g *logger) entry(fields Fields) *logrus.Entry {
	if len(fields) == 0 {
		return logrus.NewEntry(g.l)
	}
	return g.l.WithFields(logrus.Fields(fields))
}
