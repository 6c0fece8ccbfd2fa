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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nabbar/packrs/pack"
	"github.com/nabbar/packrs/store"
)

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <pack> <inputs...>",
		Short:   "Build an archive from one or more files or directories",
		Example: "packrs create backup.db3 ./photos ./notes.txt",
		Args:    cobra.MinimumNArgs(2),
		RunE:    runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	packPath := withDefaultExt(args[0])
	inputs := args[1:]

	algo, err := parseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	p, err := pack.New(packPath, pack.WithAlgorithm(algo), pack.WithPool(cfg.PoolSize), pack.WithLogger(log))
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, in := range inputs {
		if err := addInput(ctx, p, in); err != nil {
			return err
		}
	}

	if err := p.Finish(ctx); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "created %s\n", packPath)
	return nil
}

func addInput(ctx context.Context, p *pack.Packer, in string) error {
	fi, err := os.Lstat(in)
	if err != nil {
		return err
	}

	name := filepath.Base(in)
	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		_, err = p.AddSymlink(ctx, in, name, store.RootParent)
	case fi.IsDir():
		err = p.AddDirAll(ctx, in, store.RootParent)
	default:
		_, err = p.AddFile(ctx, in, name, store.RootParent)
	}
	if err != nil {
		return fmt.Errorf("add %s: %w", in, err)
	}
	return nil
}
