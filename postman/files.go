package postman

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/validator"
)

// File is an exported Postman document found on disk.
type File struct {
	Path string
	Kind validator.DocumentKind
}

// Discover walks dir recursively and returns every file whose name ends in
// validator.CollectionFileSuffix or validator.EnvironmentFileSuffix.
// Collections come before environments; within a kind, files are sorted by
// path.
func Discover(dir string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: dir, Message: "directory not found", Cause: err}
	}
	if !info.IsDir() {
		return nil, &oaserrors.AcquisitionError{Source: dir, Message: "not a directory"}
	}

	var files []File
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if kind := validator.KindFromFilename(d.Name()); kind != validator.KindAuto {
			files = append(files, File{Path: path, Kind: kind})
		}
		return nil
	})
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: dir, Message: "walking directory", Cause: err}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Kind != files[j].Kind {
			return files[i].Kind < files[j].Kind
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// LoadFile reads and decodes one JSON document.
func LoadFile(path string) (*node.Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is a user-selected input file
	if err != nil {
		msg := "reading file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "file not found"
		}
		return nil, &oaserrors.AcquisitionError{Source: path, Message: msg, Cause: err}
	}
	doc, err := node.DecodeJSON(data)
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: path, Message: "invalid JSON", Cause: err}
	}
	return doc, nil
}
