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

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nabbar/packrs/compress"
)

// config holds every setting the subcommands read, bound from flags and,
// when present, a config file loaded through viper (packrs.yaml/json/toml
// in the working directory or $HOME).
type config struct {
	Algorithm string `mapstructure:"algorithm" validate:"omitempty,oneof=none gzip bzip2 lz4 xz"`
	PoolSize  int64  `mapstructure:"pool-size" validate:"gte=0"`
	LogLevel  string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New()

func loadConfig(v *viper.Viper) (*config, error) {
	v.SetConfigName("packrs")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("PACKRS")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	cfg := &config{Algorithm: compress.Default.String(), LogLevel: "info"}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultPackName is what "list"/"extract" use when <pack> is omitted;
// "create" always takes <pack> as its first argument.
const defaultPackName = "pack.db3"

// withDefaultExt appends ".db3" to path when it has no extension, the
// convention "create" uses so a bare name like "backup" becomes
// "backup.db3" without surprising the caller.
func withDefaultExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".db3"
	}
	return path
}

func resolvePackArg(args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return defaultPackName
	}
	return args[0]
}

func parseAlgorithm(name string) (compress.Algorithm, error) {
	if name == "" {
		return compress.Default, nil
	}
	a, err := compress.Parse(name)
	if err != nil {
		return compress.None, fmt.Errorf("invalid --algorithm %q: %w", name, err)
	}
	return a, nil
}
