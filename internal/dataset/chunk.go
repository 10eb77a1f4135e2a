package dataset

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const manifestName = "manifest.yaml"

// Params identifies a dataset: board shape and chunk size. All chunks of a
// dataset share them.
type Params struct {
	Rows, Cols     int
	SamplesPerFile int
}

// chunkName is part of the on-disk contract with training-side loaders,
// which glob on it. Width comes before height.
func (p Params) chunkName(fileIdx int) string {
	return fmt.Sprintf(
		"minesweeper_%dx%d_per_file_%d_file_idx_%d.gob.gz",
		p.Cols, p.Rows, p.SamplesPerFile, fileIdx,
	)
}

// Chunk is one dataset file: SamplesPerFile consecutive samples starting at
// global index Start.
type Chunk struct {
	Start   int
	Samples []Sample
}

func writeChunk(path string, c Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create chunk: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := gob.NewEncoder(zw).Encode(c); err != nil {
		return fmt.Errorf("unable to encode chunk: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to flush chunk: %w", err)
	}
	return f.Close()
}

func readChunk(path string) (c Chunk, err error) {
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("unable to open chunk: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return c, fmt.Errorf("unable to read chunk: %w", err)
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(&c); err != nil {
		return c, fmt.Errorf("unable to decode chunk: %w", err)
	}
	return c, nil
}

// Manifest describes a generated dataset directory.
type Manifest struct {
	Rows           int    `yaml:"rows"`
	Cols           int    `yaml:"cols"`
	SamplesPerFile int    `yaml:"samples_per_file"`
	NumFiles       int    `yaml:"num_files"`
	Seed           uint64 `yaml:"seed"`
}

func (m Manifest) params() Params {
	return Params{Rows: m.Rows, Cols: m.Cols, SamplesPerFile: m.SamplesPerFile}
}

func WriteManifest(dir string, m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, manifestName), out, 0644)
}

func ReadManifest(dir string) (m Manifest, err error) {
	b, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return m, err
	}
	err = yaml.Unmarshal(b, &m)
	return m, err
}

// Reader iterates a dataset directory, keeping at most one chunk in memory,
// the way the training side consumes it.
type Reader struct {
	dir      string
	manifest Manifest

	fileIdx int // currently loaded chunk, -1 if none
	chunk   Chunk
	err     error
}

func Open(dir string) (*Reader, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read dataset manifest: %w", err)
	}
	if m.NumFiles <= 0 || m.SamplesPerFile <= 0 {
		return nil, fmt.Errorf("dataset %s is empty", dir)
	}
	return &Reader{dir: dir, manifest: m, fileIdx: -1}, nil
}

func (r *Reader) Manifest() Manifest {
	return r.manifest
}

func (r *Reader) Len() int {
	return r.manifest.NumFiles * r.manifest.SamplesPerFile
}

// At returns the sample with the given global index, loading its chunk if
// needed.
func (r *Reader) At(idx int) (Sample, error) {
	if idx < 0 || idx >= r.Len() {
		return Sample{}, fmt.Errorf("sample index %d out of range [0, %d)", idx, r.Len())
	}
	fileIdx := idx / r.manifest.SamplesPerFile
	if r.fileIdx != fileIdx {
		path := filepath.Join(r.dir, r.manifest.params().chunkName(fileIdx))
		c, err := readChunk(path)
		if err != nil {
			return Sample{}, err
		}
		r.fileIdx, r.chunk = fileIdx, c
	}
	return r.chunk.Samples[idx%r.manifest.SamplesPerFile], nil
}

// All yields every (index, sample) pair in order. Iteration stops early on
// a read failure; check Err afterwards.
func (r *Reader) All() iter.Seq2[int, Sample] {
	return func(yield func(int, Sample) bool) {
		r.err = nil
		for idx := range r.Len() {
			s, err := r.At(idx)
			if err != nil {
				r.err = err
				return
			}
			if !yield(idx, s) {
				return
			}
		}
	}
}

func (r *Reader) Err() error {
	return r.err
}
