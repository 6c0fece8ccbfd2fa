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

package store_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nabbar/packrs/store"
)

// openForeign opens path as a plain SQLite file outside the store package,
// the way an unrelated application's database would be opened, so tests can
// set up a valid-but-foreign schema without going through store.Open (which
// would graft the packrs schema onto it).
func openForeign(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())
	return db
}

func closeForeign(db *gorm.DB) {
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	Expect(sqlDB.Close()).To(Succeed())
}

var _ = Describe("Store", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "pack.db3")
	})

	It("declares item/content/itemcontent and lets the tree grow", func() {
		s, err := store.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		root, err := s.AddDirectory("a", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(root).NotTo(BeZero())

		fileID, err := s.AddFileItem("hello.txt", root)
		Expect(err).NotTo(HaveOccurred())

		contentID, err := s.WriteContent([]byte("compressed-bytes"))
		Expect(err).NotTo(HaveOccurred())

		err = s.AddItemContent(fileID, contentID, 0, 0, 16)
		Expect(err).NotTo(HaveOccurred())

		var ic store.ItemContent
		Expect(s.DB().First(&ic).Error).NotTo(HaveOccurred())
		Expect(ic.Item).To(Equal(fileID))
		Expect(ic.Content).To(Equal(contentID))
		Expect(ic.Size).To(Equal(uint64(16)))
	})

	It("recognizes a non-empty archive and rejects everything else", func() {
		s, err := store.Open(path)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.AddDirectory("a", store.RootParent)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Close()).NotTo(HaveOccurred())

		ok, err := store.IsArchive(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		notAFile := filepath.Join(filepath.Dir(path), "missing.db3")
		_, err = store.IsArchive(notAFile)
		Expect(err).To(HaveOccurred())

		emptyPath := filepath.Join(filepath.Dir(path), "empty.bin")
		Expect(os.WriteFile(emptyPath, []byte("short"), 0o644)).To(Succeed())
		ok, err = store.IsArchive(emptyPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	// S6: a valid SQLite file under a different schema is rejected, and the
	// probe itself must be read-only — it must not graft a fresh
	// item/content/itemcontent schema onto the file it failed to recognize.
	It("rejects a valid SQLite file with a foreign schema without mutating it", func() {
		foreign := filepath.Join(filepath.Dir(path), "foreign.db3")

		db := openForeign(foreign)
		Expect(db.Exec(`CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT)`).Error).NotTo(HaveOccurred())
		Expect(db.Exec(`INSERT INTO widgets (name) VALUES (?)`, "gadget").Error).NotTo(HaveOccurred())
		closeForeign(db)

		ok, err := store.IsArchive(foreign)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		verify := openForeign(foreign)
		defer closeForeign(verify)

		Expect(verify.Migrator().HasTable("item")).To(BeFalse())
		Expect(verify.Migrator().HasTable("content")).To(BeFalse())
		Expect(verify.Migrator().HasTable("itemcontent")).To(BeFalse())
		Expect(verify.Migrator().HasTable("widgets")).To(BeTrue())
	})
})
