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

package unpack_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/packrs/compress"
	"github.com/nabbar/packrs/pack"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/unpack"
)

var _ = Describe("Unpacker", func() {
	var (
		ctx      context.Context
		srcDir   string
		destDir  string
		archive  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		srcDir = GinkgoT().TempDir()
		destDir = GinkgoT().TempDir()
		archive = filepath.Join(GinkgoT().TempDir(), "pack.db3")
	})

	// S1/S4: round trips a small tree including a nested directory, an
	// empty file, and a symlink, byte-for-byte.
	It("round trips a small tree, including empty files and symlinks", func() {
		Expect(os.MkdirAll(filepath.Join(srcDir, "a", "sub"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(srcDir, "a", "hello.txt"), []byte("hello\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(srcDir, "a", "sub", "empty.txt"), nil, 0o644)).To(Succeed())
		Expect(os.Symlink("hello.txt", filepath.Join(srcDir, "a", "link"))).To(Succeed())

		p, err := pack.New(archive, pack.WithAlgorithm(compress.Gzip))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.AddDirAll(ctx, filepath.Join(srcDir, "a"), store.RootParent)).To(Succeed())
		Expect(p.Finish(ctx)).To(Succeed())

		u, err := unpack.New(archive, destDir)
		Expect(err).NotTo(HaveOccurred())
		defer u.Close()

		count, err := u.ExtractAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(BeNumerically(">=", 3))

		got, err := os.ReadFile(filepath.Join(destDir, "a", "hello.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]byte("hello\n")))

		fi, err := os.Stat(filepath.Join(destDir, "a", "sub", "empty.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(fi.Size()).To(BeZero())

		target, err := os.Readlink(filepath.Join(destDir, "a", "link"))
		Expect(err).NotTo(HaveOccurred())
		Expect(target).To(Equal("hello.txt"))

		_, err = os.Stat(filepath.Join(destDir, "a", "sub"))
		Expect(err).NotTo(HaveOccurred())
	})

	// S2: a split file reassembles byte-for-byte across two bundles.
	It("reassembles a file split across two bundles", func() {
		const size = 20_000_000
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i % 251)
		}
		Expect(os.WriteFile(filepath.Join(srcDir, "big.bin"), data, 0o644)).To(Succeed())

		p, err := pack.New(archive, pack.WithAlgorithm(compress.LZ4))
		Expect(err).NotTo(HaveOccurred())
		_, err = p.AddFile(ctx, filepath.Join(srcDir, "big.bin"), "big.bin", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Finish(ctx)).To(Succeed())

		u, err := unpack.New(archive, destDir)
		Expect(err).NotTo(HaveOccurred())
		defer u.Close()

		_, err = u.ExtractAll()
		Expect(err).NotTo(HaveOccurred())

		got, err := os.ReadFile(filepath.Join(destDir, "big.bin"))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(data))
	})

	// S5: a path-escaping item name never writes outside the destination.
	It("never writes outside the destination for an escaping name", func() {
		p, err := pack.New(archive, pack.WithAlgorithm(compress.None))
		Expect(err).NotTo(HaveOccurred())
		_, err = p.AddDirectory("../../etc", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Finish(ctx)).To(Succeed())

		u, err := unpack.New(archive, destDir)
		Expect(err).NotTo(HaveOccurred())
		defer u.Close()

		_, err = u.ExtractAll()
		Expect(err).NotTo(HaveOccurred())

		_, statErr := os.Stat(filepath.Join(destDir, "etc"))
		Expect(statErr).NotTo(HaveOccurred())

		outside := filepath.Join(filepath.Dir(destDir), "etc")
		_, statErr = os.Stat(outside)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})
