// Package commands provides CLI command handlers for apinorm.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/erraggy/apinorm/config"
	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/logging"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/validator"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Streams used by the commands. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ErrDocumentsFailed is returned by batch commands when at least one
// document could not be processed. Every failure has already been printed.
var ErrDocumentsFailed = errors.New("one or more documents failed")

// commonFlags are shared by every command that reads configuration.
type commonFlags struct {
	EnvFile string
	Quiet   bool
	Verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.EnvFile, "env-file", "", "load variables from this file instead of ./.env")
	fs.BoolVar(&c.Quiet, "q", false, "quiet mode: only print failures")
	fs.BoolVar(&c.Quiet, "quiet", false, "quiet mode: only print failures")
	fs.BoolVar(&c.Verbose, "v", false, "log pipeline stages and fixes to stderr")
	fs.BoolVar(&c.Verbose, "verbose", false, "log pipeline stages and fixes to stderr")
}

// loadConfig reads configuration from the environment and the env file.
func (c *commonFlags) loadConfig() (*config.Config, error) {
	if c.EnvFile != "" {
		return config.Load(c.EnvFile)
	}
	return config.Load()
}

// logger returns a debug text logger on stderr in verbose mode.
func (c *commonFlags) logger() logging.Logger {
	if !c.Verbose {
		return logging.NopLogger{}
	}
	return logging.NewTextLogger(stderr, slog.LevelDebug)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
}

// FormatSpecPath returns a display-friendly path for a document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// readInput reads a file, or stdin when path is StdinFilePath.
func readInput(path string) ([]byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304 - CLI input file
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// isJSON reports whether data looks like a JSON document.
func isJSON(data []byte) bool {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// MarshalDocument serializes doc as indented JSON (with trailing newline)
// or YAML.
func MarshalDocument(doc *node.Node, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := node.MarshalJSONIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return node.MarshalYAML(doc)
	default:
		return nil, fmt.Errorf("invalid format for document output: %s", format)
	}
}

// printViolations writes one line per violation under a document header.
func printViolations(w io.Writer, source string, list []validator.Violation) {
	cliutil.Writef(w, "%s:\n", source)
	for _, v := range list {
		cliutil.Writef(w, "  %s\n", v)
	}
}

// commandContext returns a context cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
