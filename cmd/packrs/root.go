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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/packrs/logger"
)

var (
	flagAlgorithm string
	flagPoolSize  int64
	flagLogLevel  string

	cfg *config
	log logger.Logger
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "packrs",
		Short:         "Pack and unpack file trees into a single embedded-store archive",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			loaded, err := loadConfig(v)
			if err != nil {
				return err
			}
			if flagAlgorithm != "" {
				loaded.Algorithm = flagAlgorithm
			}
			if flagPoolSize != 0 {
				loaded.PoolSize = flagPoolSize
			}
			if flagLogLevel != "" {
				loaded.LogLevel = flagLogLevel
			}
			cfg = loaded
			log = logger.NewStderr(logger.ParseLevel(cfg.LogLevel))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagAlgorithm, "algorithm", "", "bundle compression algorithm: none, gzip, bzip2, lz4, xz (default lz4)")
	root.PersistentFlags().Int64Var(&flagPoolSize, "pool-size", 0, "number of workers overlapping bundle compression with tree walking (0: synchronous)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error (default info)")

	root.AddCommand(newCreateCommand())
	root.AddCommand(newListCommand())
	root.AddCommand(newExtractCommand())

	return root
}
