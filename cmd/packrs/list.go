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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	liberr "github.com/nabbar/packrs/errors"
	"github.com/nabbar/packrs/store"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list [pack]",
		Short:   "Print one line per non-directory item's full path",
		Example: "packrs list backup.db3",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runList,
	}
}

// listRow mirrors the archive's recursive path-reconstruction query,
// restricted to non-directory items, with the extra size column "list"
// needs that extraction doesn't.
type listRow struct {
	Kind store.Kind
	Path string
	Size uint64
}

const listSQL = `
WITH RECURSIVE tree(id, kind, path) AS (
	SELECT id, kind, name FROM item WHERE parent = 0
	UNION ALL
	SELECT item.id, item.kind, tree.path || '/' || item.name
	FROM item JOIN tree ON item.parent = tree.id
)
SELECT tree.kind AS kind, tree.path AS path, COALESCE(SUM(itemcontent.size), 0) AS size
FROM tree
LEFT JOIN itemcontent ON tree.id = itemcontent.item
WHERE tree.kind != ?
GROUP BY tree.id
ORDER BY tree.path`

func runList(cmd *cobra.Command, args []string) error {
	packPath := resolvePackArg(args)

	ok, err := store.IsArchive(packPath)
	if err != nil {
		return err
	}
	if !ok {
		return liberr.CodeNotArchive.Error(fmt.Errorf("%s is not a packrs archive", packPath))
	}

	s, err := store.OpenReadOnly(packPath)
	if err != nil {
		return err
	}
	defer s.Close()

	var rows []listRow
	if err := s.DB().Raw(listSQL, store.KindDirectory).Scan(&rows).Error; err != nil {
		return liberr.CodeStore.Error(err)
	}

	out := cmd.OutOrStdout()
	for _, r := range rows {
		fmt.Fprintf(out, "%s\t%s\n", humanize.Bytes(r.Size), r.Path)
	}
	return nil
}
