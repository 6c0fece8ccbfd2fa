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

package pack

import (
	"context"
	"os"
	"path/filepath"
)

// dirFrame is one entry on the explicit traversal stack: a directory's item
// id in the archive tree, paired with its path on disk.
type dirFrame struct {
	itemID uint64
	path   string
}

// AddDirAll walks root iteratively (no recursion, no risk of stack
// overflow on a deep tree) and adds every entry it finds: directories,
// files, and symlinks, each attached to its parent's item id. Metadata is
// read with Lstat so that symlinks are detected as symlinks rather than
// followed.
func (p *Packer) AddDirAll(ctx context.Context, root string, rootParent uint64) error {
	rootID, err := p.AddDirectory(filepath.Base(root), rootParent)
	if err != nil {
		return err
	}

	stack := []dirFrame{{itemID: rootID, path: root}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			childPath := filepath.Join(cur.path, entry.Name())

			info, err := os.Lstat(childPath)
			if err != nil {
				return err
			}

			switch {
			case info.Mode()&os.ModeSymlink != 0:
				if _, err := p.AddSymlink(ctx, childPath, entry.Name(), cur.itemID); err != nil {
					return err
				}
			case info.IsDir():
				childID, err := p.AddDirectory(entry.Name(), cur.itemID)
				if err != nil {
					return err
				}
				stack = append(stack, dirFrame{itemID: childID, path: childPath})
			default:
				if _, err := p.AddFile(ctx, childPath, entry.Name(), cur.itemID); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
