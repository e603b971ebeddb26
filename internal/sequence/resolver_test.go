package sequence_test

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vtkview/internal/fsutil"
	"github.com/san-kum/vtkview/internal/sequence"
)

func names(entries []sequence.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

var _ = Describe("ParseSuffix", func() {
	DescribeTable("splits sequence names",
		func(name, prefix, digits string, number uint64) {
			sfx, ok := sequence.ParseSuffix(name)
			Expect(ok).To(BeTrue())
			Expect(sfx.Prefix).To(Equal(prefix))
			Expect(sfx.Digits).To(Equal(digits))
			Expect(sfx.Number).To(Equal(number))
		},
		Entry("zero padded", "foo012.vtk", "foo", "012", uint64(12)),
		Entry("time step", "karman_vortex_000500.vtk", "karman_vortex_", "000500", uint64(500)),
		Entry("upper-case extension", "data_7.VTK", "data_", "7", uint64(7)),
		Entry("all digits keeps one prefix char", "123.vtk", "1", "23", uint64(23)),
	)

	DescribeTable("rejects non-sequence names",
		func(name string) {
			_, ok := sequence.ParseSuffix(name)
			Expect(ok).To(BeFalse())
		},
		Entry("digits not before extension", "foo12bar.vtk"),
		Entry("no digits", "sample.vtk"),
		Entry("other extension", "data_001.vtu"),
		Entry("extension only", "1.vtk"),
		Entry("trailing junk", "data_001.vtk.bak"),
	)

	It("treats zero padding as the same number", func() {
		a, _ := sequence.ParseSuffix("x000500.vtk")
		b, _ := sequence.ParseSuffix("x500.vtk")
		Expect(a.Number).To(Equal(b.Number))
		Expect(a.Digits).NotTo(Equal(b.Digits))
	})
})

var _ = Describe("Resolver", func() {
	var (
		mem fstest.MapFS
		r   *sequence.Resolver
	)

	BeforeEach(func() {
		mem = fstest.MapFS{}
		r = sequence.NewResolver(fsutil.FromFS(mem))
	})

	write := func(names ...string) {
		for _, n := range names {
			mem[path.Join("sim", n)] = &fstest.MapFile{Data: []byte("# vtk")}
		}
	}

	Describe("List", func() {
		It("orders numerically rather than lexically", func() {
			write("data_010.vtk", "data_002.vtk", "data_001.vtk", "data_005.vtk")
			Expect(names(r.List("/sim", "data_"))).To(Equal([]string{
				"data_001.vtk", "data_002.vtk", "data_005.vtk", "data_010.vtk",
			}))
		})

		It("orders unpadded numbers by value", func() {
			write("s10.vtk", "s9.vtk", "s100.vtk")
			Expect(names(r.List("/sim", "s"))).To(Equal([]string{"s9.vtk", "s10.vtk", "s100.vtk"}))
		})

		It("keeps only exact prefix matches", func() {
			write("data_001.vtk", "data_x_002.vtk", "other_003.vtk", "data_004.txt", "DATA_005.VTK")
			Expect(names(r.List("/sim", "data_"))).To(Equal([]string{"data_001.vtk", "DATA_005.VTK"}))
		})

		It("treats the prefix as a literal, not a pattern", func() {
			write("a.b1.vtk", "axb2.vtk", "a.b3.vtk")
			Expect(names(r.List("/sim", "a.b"))).To(Equal([]string{"a.b1.vtk", "a.b3.vtk"}))
		})

		It("ignores directories", func() {
			write("d1.vtk")
			mem["sim/d2.vtk"] = &fstest.MapFile{Mode: fs.ModeDir}
			Expect(names(r.List("/sim", "d"))).To(Equal([]string{"d1.vtk"}))
		})

		It("returns an empty sequence for a missing directory", func() {
			entries := r.List("/nope", "data_")
			Expect(entries).NotTo(BeNil())
			Expect(entries).To(BeEmpty())
		})

		It("orders digit runs longer than uint64", func() {
			write("big99999999999999999999999.vtk", "big1.vtk", "big100000000000000000000000.vtk")
			Expect(names(r.List("/sim", "big"))).To(Equal([]string{
				"big1.vtk", "big99999999999999999999999.vtk", "big100000000000000000000000.vtk",
			}))
		})
	})

	Describe("navigation in a gapped sequence", func() {
		BeforeEach(func() {
			write("data_001.vtk", "data_002.vtk", "data_005.vtk", "data_010.vtk")
		})

		It("skips the gap going forward", func() {
			p, ok := r.Adjacent("/sim/data_002.vtk", sequence.Next)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal("/sim/data_005.vtk"))
		})

		It("skips the gap going back", func() {
			p, ok := r.Adjacent("/sim/data_010.vtk", sequence.Prev)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal("/sim/data_005.vtk"))
		})

		It("has no neighbour past either end", func() {
			_, ok := r.Adjacent("/sim/data_001.vtk", sequence.Prev)
			Expect(ok).To(BeFalse())
			_, ok = r.Adjacent("/sim/data_010.vtk", sequence.Next)
			Expect(ok).To(BeFalse())
		})

		It("sees files added between queries", func() {
			write("data_003.vtk")
			p, _ := r.Adjacent("/sim/data_002.vtk", sequence.Next)
			Expect(p).To(Equal("/sim/data_003.vtk"))
		})
	})

	Describe("a three-file time series", func() {
		BeforeEach(func() {
			write("karman_vortex_000500.vtk", "karman_vortex_001000.vtk", "karman_vortex_001500.vtk")
		})

		DescribeTable("boundary flags",
			func(name string, hasPrev, hasNext bool, index int) {
				path := "/sim/" + name
				fi := r.FileInfo(path)
				Expect(fi.CurrentFile).To(Equal(name))
				Expect(fi.HasPrev).To(Equal(hasPrev))
				Expect(fi.HasNext).To(Equal(hasNext))

				info := r.SequenceInfo(path)
				Expect(info.CurrentIndex).To(Equal(index))
				Expect(info.TotalFiles).To(Equal(3))
				Expect(info.Pattern).To(Equal("karman_vortex_*"))
			},
			Entry("first", "karman_vortex_000500.vtk", false, true, 1),
			Entry("middle", "karman_vortex_001000.vtk", true, true, 2),
			Entry("last", "karman_vortex_001500.vtk", true, false, 3),
		)

		It("combines both answers in Navigation", func() {
			nav := r.Navigation("/sim/karman_vortex_001000.vtk")
			Expect(nav.HasPrev).To(BeTrue())
			Expect(nav.HasNext).To(BeTrue())
			Expect(nav.Info).To(Equal(&sequence.Info{CurrentIndex: 2, TotalFiles: 3, Pattern: "karman_vortex_*"}))
		})

		It("lists the whole sequence from any member", func() {
			Expect(r.All("/sim/karman_vortex_001500.vtk")).To(HaveLen(3))
			Expect(r.All("/sim/readme.vtk")).To(BeNil())
		})
	})

	Describe("files outside any sequence", func() {
		It("reports nothing for a name without a numeric suffix", func() {
			write("sample.vtk", "sample1.vtk")
			fi := r.FileInfo("/sim/sample.vtk")
			Expect(fi.HasPrev).To(BeFalse())
			Expect(fi.HasNext).To(BeFalse())
			Expect(r.SequenceInfo("/sim/sample.vtk")).To(Equal(sequence.Info{CurrentIndex: -1, TotalFiles: 0, Pattern: ""}))
			_, ok := r.Adjacent("/sim/sample.vtk", sequence.Next)
			Expect(ok).To(BeFalse())
		})

		It("reports nothing when the file is not in its own listing", func() {
			write("run_001.vtk", "run_003.vtk")
			fi := r.FileInfo("/sim/run_002.vtk")
			Expect(fi.HasPrev).To(BeFalse())
			Expect(fi.HasNext).To(BeFalse())
			Expect(r.SequenceInfo("/sim/run_002.vtk").CurrentIndex).To(Equal(-1))
			Expect(r.SequenceInfo("/sim/run_002.vtk").TotalFiles).To(Equal(0))
		})

		It("reports nothing when the directory is missing", func() {
			nav := r.Navigation("/gone/run_001.vtk")
			Expect(nav.HasPrev).To(BeFalse())
			Expect(nav.HasNext).To(BeFalse())
			Expect(nav.Info.CurrentIndex).To(Equal(-1))
		})
	})

	Describe("zero-padding variants of one number", func() {
		It("locates the exact file name first", func() {
			write("v1.vtk", "v01.vtk", "v2.vtk")
			Expect(r.SequenceInfo("/sim/v1.vtk").CurrentIndex).To(Equal(2))
			Expect(r.SequenceInfo("/sim/v01.vtk").CurrentIndex).To(Equal(1))
		})
	})

	Describe("existence re-check", func() {
		It("drops a neighbour that vanished after listing", func() {
			write("t1.vtk", "t2.vtk")
			flaky := &vanishingFS{FS: fsutil.FromFS(mem), gone: "/sim/t2.vtk"}
			_, ok := sequence.NewResolver(flaky).Adjacent("/sim/t1.vtk", sequence.Next)
			Expect(ok).To(BeFalse())
		})
	})
})

// vanishingFS lists a file but reports it missing on the existence check.
type vanishingFS struct {
	fsutil.FS
	gone string
}

func (v *vanishingFS) Exists(name string) bool {
	if name == v.gone {
		return false
	}
	return v.FS.Exists(name)
}

var _ = Describe("Resolver on the OS filesystem", func() {
	It("walks a real directory", func() {
		dir := GinkgoT().TempDir()
		for _, n := range []string{"step_1.vtk", "step_2.vtk", "step_10.vtk"} {
			Expect(os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644)).To(Succeed())
		}
		r := sequence.NewResolver(nil)

		p, ok := r.Adjacent(filepath.Join(dir, "step_2.vtk"), sequence.Next)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(filepath.Join(dir, "step_10.vtk")))

		Expect(os.Remove(filepath.Join(dir, "step_10.vtk"))).To(Succeed())
		Expect(r.FileInfo(filepath.Join(dir, "step_2.vtk")).HasNext).To(BeFalse())
	})

	It("returns an empty sequence for a nonexistent directory", func() {
		Expect(sequence.NewResolver(nil).List(filepath.Join(GinkgoT().TempDir(), "missing"), "x")).To(BeEmpty())
	})
})
