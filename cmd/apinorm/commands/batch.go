package commands

import (
	"errors"
	"io"
	"os"

	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/postman"
	"github.com/erraggy/apinorm/validator"
)

// collectFiles expands directory arguments into the Postman exports they
// contain. File arguments are kept as given, with the kind implied by
// their name (KindAuto when the name has no Postman suffix).
func collectFiles(args []string) ([]postman.File, error) {
	var files []postman.File
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, &oaserrors.AcquisitionError{Source: arg, Message: "path not found", Cause: err}
		}
		if !info.IsDir() {
			files = append(files, postman.File{Path: arg, Kind: validator.KindFromFilename(arg)})
			continue
		}
		found, err := postman.Discover(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// batch tallies per-document outcomes of a batch command.
type batch struct {
	total  int
	failed int
}

// fail prints a per-document failure. Validation failures list every
// violation; other errors are printed on one line.
func (b *batch) fail(w io.Writer, path string, err error) {
	b.failed++
	var verr *oaserrors.ValidationError
	if errors.As(err, &verr) {
		cliutil.Writef(w, "✗ %s: %s\n", path, cliutil.Count(len(verr.Violations), "violation", "violations"))
		for _, v := range verr.Violations {
			cliutil.Writef(w, "    %s\n", v)
		}
		return
	}
	cliutil.Writef(w, "✗ %s: %v\n", path, err)
}

// err returns ErrDocumentsFailed when any document failed.
func (b *batch) err() error {
	if b.failed > 0 {
		return ErrDocumentsFailed
	}
	return nil
}

// summary formats the tally, e.g. "3 documents, 1 failed".
func (b *batch) summary() string {
	s := cliutil.Count(b.total, "document", "documents")
	if b.failed > 0 {
		s += ", " + cliutil.Count(b.failed, "failed", "failed")
	}
	return s
}
