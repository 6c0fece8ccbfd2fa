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

// Package store is the embedded relational archive container: three tables,
// item/content/itemcontent, opened through GORM over SQLite.
package store

// Kind is the persisted discriminator for an item row. The numeric mapping
// is fixed for the lifetime of the format: FILE=0, DIRECTORY=1, SYMLINK=2.
// An earlier DIRECTORY=0/FILE=1 revision exists in older archives; this
// implementation does not read that legacy mapping (see SPEC_FULL.md §6).
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// BundleCapacity is the fixed upper bound, in bytes, on the sum of
// itemcontent slice sizes belonging to a single content row.
const BundleCapacity = 16 * 1024 * 1024

// RootParent is the parent value recorded on items with no parent directory.
const RootParent = 0

// Item is a node in the archive's directory tree: a directory, file, or
// symlink. Root-level items carry Parent == RootParent.
type Item struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Parent uint64 `gorm:"column:parent;index;not null"`
	Kind   Kind   `gorm:"column:kind;not null"`
	Name   string `gorm:"column:name;not null"`
}

func (Item) TableName() string { return "item" }

// Content is one compressed bundle, stored as a single BLOB.
type Content struct {
	ID    uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Value []byte `gorm:"column:value;not null"`
}

func (Content) TableName() string { return "content" }

// ItemContent maps a contiguous byte range of an Item to a contiguous byte
// range inside the decompressed form of a Content bundle.
type ItemContent struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Item       uint64 `gorm:"column:item;index;not null"`
	ItemPos    uint64 `gorm:"column:itempos;not null"`
	Content    uint64 `gorm:"column:content;index;not null"`
	ContentPos uint64 `gorm:"column:contentpos;not null"`
	Size       uint64 `gorm:"column:size;not null"`
}

func (ItemContent) TableName() string { return "itemcontent" }
