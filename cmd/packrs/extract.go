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
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	liberr "github.com/nabbar/packrs/errors"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/unpack"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "extract [pack]",
		Short:   "Restore all entries of an archive under the current directory",
		Example: "packrs extract backup.db3",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	packPath := resolvePackArg(args)

	ok, err := store.IsArchive(packPath)
	if err != nil {
		return err
	}
	if !ok {
		return liberr.CodeNotArchive.Error(fmt.Errorf("%s is not a packrs archive", packPath))
	}

	dest, err := os.Getwd()
	if err != nil {
		return err
	}

	u, err := unpack.New(packPath, dest, unpack.WithLogger(log))
	if err != nil {
		return err
	}
	defer u.Close()

	count, err := u.ExtractAll()
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "extracted %d items from %s\n", count, packPath)
	return nil
}
