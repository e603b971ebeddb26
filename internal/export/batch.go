package export

import (
	"context"
	"fmt"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/fsutil"
	"github.com/san-kum/vtkview/internal/monitoring"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/sequence"
	"github.com/san-kum/vtkview/internal/vtk"
)

// Batch renders every file of a sequence with the same settings.
type Batch struct {
	FS       fsutil.FileSystem
	Field    string
	Colormap string
	// Range fixes the color range; nil uses each file's auto range, or
	// the range over all files when Shared is set.
	Range   *colormap.Range
	Shared  bool
	Options Options
	OutDir  string
	Workers int
}

// BatchResult reports one file. Err is set when the file could not be
// read, parsed, rendered or written; other files are not affected.
type BatchResult struct {
	Input    string
	Output   string
	Field    string
	Range    colormap.Range
	FellBack bool
	Err      error
}

func (b *Batch) fs() fsutil.FileSystem {
	if b.FS == nil {
		return fsutil.OSFileSystem{}
	}
	return b.FS
}

func (b *Batch) workers() int {
	if b.Workers < 1 {
		return 1
	}
	return b.Workers
}

func (b *Batch) load(path string) (*vtk.Grid, *vtk.ScalarField, error) {
	data, err := b.fs().ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := vtk.Parse(string(data))
	if err != nil {
		return nil, nil, err
	}
	name := b.Field
	if name == "" {
		name = g.FirstScalar()
	}
	f, ok := g.Scalar(name)
	if !ok {
		return nil, nil, &render.FieldNotFoundError{Field: name}
	}
	return g, f, nil
}

// Run renders files concurrently. The returned slice is in input order.
// The error is only set when ctx is cancelled.
func (b *Batch) Run(ctx context.Context, files []sequence.Entry) ([]BatchResult, error) {
	if b.OutDir != "" {
		if err := os.MkdirAll(b.OutDir, 0755); err != nil {
			return nil, err
		}
	}

	rng := b.Range
	if rng == nil && b.Shared {
		shared, err := b.sharedRange(ctx, files)
		if err != nil {
			return nil, err
		}
		rng = shared
	}

	results := make([]BatchResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())

	for i, entry := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.renderOne(entry.Path, rng)
			if err := results[i].Err; err != nil {
				monitoring.Logf("batch: %s: %v", entry.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (b *Batch) renderOne(path string, rng *colormap.Range) BatchResult {
	res := BatchResult{Input: path, Output: OutputPath(path, b.OutDir, b.Options.Format)}

	grid, field, err := b.load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Field = field.Name

	frame, fellBack, err := render.RenderWithFallback(grid, field.Name, b.Colormap, rng)
	if err != nil {
		res.Err = err
		return res
	}
	res.Range = frame.Range
	res.FellBack = fellBack

	out, err := os.Create(res.Output)
	if err != nil {
		res.Err = err
		return res
	}
	if err := Write(out, grid, frame, b.Options); err != nil {
		out.Close()
		res.Err = err
		return res
	}
	res.Err = out.Close()
	return res
}

// sharedRange is the union of the auto ranges of all readable files.
func (b *Batch) sharedRange(ctx context.Context, files []sequence.Entry) (*colormap.Range, error) {
	ranges := make([]colormap.Range, len(files))
	found := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())
	for i, entry := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, f, err := b.load(entry.Path)
			if err != nil {
				return nil
			}
			ranges[i], found[i] = colormap.AutoRange(f.Values)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := colormap.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for i, r := range ranges {
		if !found[i] {
			continue
		}
		out.Min = math.Min(out.Min, r.Min)
		out.Max = math.Max(out.Max, r.Max)
	}
	if math.IsInf(out.Min, 1) {
		return nil, fmt.Errorf("batch: no file in the sequence has finite values")
	}
	out = out.Widen()
	return &out, nil
}
