package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/mediaprep/internal/naming"
)

// ErrInputMissing is returned when the input directory does not exist.
var ErrInputMissing = errors.New("input directory does not exist")

// MediaFile is one discovered input. Ext is lowercase with a leading dot.
type MediaFile struct {
	Name string
	Path string
	Base string
	Ext  string
	Size int64
}

// Discover lists dir (non-recursively), keeps regular files whose
// lowercase extension is in exts, and returns them sorted by name for
// deterministic processing order. Subdirectories and other entries are
// skipped silently.
func Discover(dir string, exts []string) ([]MediaFile, error) {
	allow := make(map[string]bool, len(exts))
	for _, e := range exts {
		allow[strings.ToLower(e)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, dir)
		}
		return nil, err
	}

	var files []MediaFile
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !allow[ext] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks so linked media is picked up.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, MediaFile{
			Name: e.Name(),
			Path: path,
			Base: naming.BaseName(e.Name()),
			Ext:  ext,
			Size: fi.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
