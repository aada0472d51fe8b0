package configio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/rmohr/plstats/pkg/api"
	"github.com/sirupsen/logrus"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatList Format = "list"
)

var compressionSuffixes = []string{".gz", ".bz2", ".xz", ".zst", ".lz4", ".sz", ".br"}

// FormatOf derives the population format from a file name, looking through
// a compression suffix. Anything but .csv is treated as a list.
func FormatOf(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range compressionSuffixes {
		name = strings.TrimSuffix(name, suffix)
	}
	if strings.HasSuffix(name, ".csv") {
		return FormatCSV
	}
	return FormatList
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() (err error) {
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path for reading and transparently decompresses it when the
// content is identified as a compressed stream.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	format, stream, err := archives.Identify(ctx, filepath.Base(path), f)
	if _, ok := format.(archives.Brotli); ok && !strings.HasSuffix(strings.ToLower(path), ".br") {
		// brotli has no magic bytes, text may look like a valid stream
		err = archives.NoMatch
	}
	if errors.Is(err, archives.NoMatch) {
		return &readCloser{Reader: stream, closers: []io.Closer{f}}, nil
	} else if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to identify %s: %w", path, err)
	}
	decompressor, ok := format.(archives.Decompressor)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%s is an archive, expected a plain or compressed file", path)
	}
	rc, err := decompressor.OpenReader(stream)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	logrus.Debugf("Decompressing %s as %s.", path, format.Extension())
	return &readCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
}

// Load reads a population from path in the format derived by FormatOf.
func Load(ctx context.Context, path string, opts ReadOptions) (*api.Population, error) {
	r, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var configurations []api.Configuration
	switch FormatOf(path) {
	case FormatCSV:
		configurations, err = ReadCSV(r, opts)
	default:
		configurations, err = ReadList(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load population from %s: %w", path, err)
	}
	pop := api.NewPopulation(configurations...)
	if pop.Len() != len(configurations) {
		logrus.Warnf("Dropped %d duplicate configurations from %s.", len(configurations)-pop.Len(), path)
	}
	logrus.Infof("Loaded %d configurations from %s.", pop.Len(), path)
	return pop, nil
}

// LoadAttributes reads an attribute CSV from path.
func LoadAttributes(ctx context.Context, path string) ([]api.Record, error) {
	r, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	records, err := ReadAttributes(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load attributes from %s: %w", path, err)
	}
	logrus.Infof("Loaded %d attributed configurations from %s.", len(records), path)
	return records, nil
}

// Write serializes configurations in the given format. Elements define the
// CSV columns and are ignored for lists.
func Write(w io.Writer, format Format, elements []string, configurations []api.Configuration) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, elements, configurations)
	case FormatList:
		return WriteList(w, configurations)
	default:
		return fmt.Errorf("unknown population format %q", format)
	}
}
