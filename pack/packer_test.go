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

package pack_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/packrs/compress"
	"github.com/nabbar/packrs/pack"
	"github.com/nabbar/packrs/store"
)

var _ = Describe("Packer", func() {
	var (
		ctx     context.Context
		srcDir  string
		archive string
	)

	BeforeEach(func() {
		ctx = context.Background()
		srcDir = GinkgoT().TempDir()
		archive = filepath.Join(GinkgoT().TempDir(), "pack.db3")
	})

	// S1: a small tree with one non-empty file and one empty file.
	It("packs a small tree into one bundle", func() {
		Expect(os.MkdirAll(filepath.Join(srcDir, "a", "sub"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(srcDir, "a", "hello.txt"), []byte("hello\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(srcDir, "a", "sub", "empty.txt"), nil, 0o644)).To(Succeed())

		p, err := pack.New(archive, pack.WithAlgorithm(compress.Gzip))
		Expect(err).NotTo(HaveOccurred())

		Expect(p.AddDirAll(ctx, filepath.Join(srcDir, "a"), store.RootParent)).To(Succeed())
		Expect(p.Finish(ctx)).To(Succeed())

		s, err := store.Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		var contentCount int64
		Expect(s.DB().Table("content").Count(&contentCount).Error).NotTo(HaveOccurred())
		Expect(contentCount).To(Equal(int64(1)))
	})

	// S2: a file larger than BUNDLE_CAPACITY splits across exactly 2 bundles.
	It("splits a file larger than bundle capacity across two bundles", func() {
		const size = 20_000_000
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i % 251)
		}
		Expect(os.WriteFile(filepath.Join(srcDir, "big.bin"), data, 0o644)).To(Succeed())

		p, err := pack.New(archive, pack.WithAlgorithm(compress.None))
		Expect(err).NotTo(HaveOccurred())

		_, err = p.AddFile(ctx, filepath.Join(srcDir, "big.bin"), "big.bin", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Finish(ctx)).To(Succeed())

		s, err := store.Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		var contentCount int64
		Expect(s.DB().Table("content").Count(&contentCount).Error).NotTo(HaveOccurred())
		Expect(contentCount).To(Equal(int64(2)))

		var rows []store.ItemContent
		Expect(s.DB().Order("itempos").Find(&rows).Error).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].ItemPos).To(Equal(uint64(0)))
		Expect(rows[0].Size).To(Equal(uint64(store.BundleCapacity)))
		Expect(rows[1].ItemPos).To(Equal(uint64(store.BundleCapacity)))
		Expect(rows[1].Size).To(Equal(uint64(size - store.BundleCapacity)))
	})

	It("round trips a file's bytes through a compressed bundle", func() {
		payload := bytes.Repeat([]byte("packrs"), 1000)
		Expect(os.WriteFile(filepath.Join(srcDir, "f.bin"), payload, 0o644)).To(Succeed())

		p, err := pack.New(archive, pack.WithAlgorithm(compress.LZ4))
		Expect(err).NotTo(HaveOccurred())
		id, err := p.AddFile(ctx, filepath.Join(srcDir, "f.bin"), "f.bin", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Finish(ctx)).To(Succeed())

		s, err := store.Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		var ic store.ItemContent
		Expect(s.DB().Where("item = ?", id).First(&ic).Error).NotTo(HaveOccurred())
		Expect(ic.Size).To(Equal(uint64(len(payload))))

		var c store.Content
		Expect(s.DB().First(&c, ic.Content).Error).NotTo(HaveOccurred())

		r, err := compress.LZ4.NewReader(bytes.NewReader(c.Value))
		Expect(err).NotTo(HaveOccurred())
		got := make([]byte, ic.Size)
		_, err = io.ReadFull(r, got)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(payload))
	})
})
