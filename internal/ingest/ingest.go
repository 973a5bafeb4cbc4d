// Package ingest is the I/O boundary in front of the parser: it reads an
// export's bytes, fingerprints them and hands them to the parser.
package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/parser"
)

// MaxSize is the largest export accepted. Chat exports are read whole.
const MaxSize = 1 << 30

var (
	// ErrEmptyInput is returned for a file or reader with no bytes.
	ErrEmptyInput = errors.New("export is empty")
	// ErrTooLarge is returned when an export exceeds MaxSize.
	ErrTooLarge = errors.New("export too large")
)

// Stats describes how an export was read.
type Stats struct {
	Name        string          `json:"name"`
	Bytes       int64           `json:"bytes"`
	Encoding    parser.Encoding `json:"encoding"`
	Fingerprint string          `json:"fingerprint"`
	Duration    time.Duration   `json:"duration"`
}

// Result is a parsed export plus the stats of reading it.
type Result struct {
	Parse models.ParseResult
	Stats Stats
}

// LoadFile reads and parses the export at path.
func LoadFile(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read %s: is a directory", path)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Load(filepath.Base(path), f)
}

// Load reads r to the end and parses it. name is only used for reporting.
func Load(name string, r io.Reader) (*Result, error) {
	start := time.Now()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if n > MaxSize {
		return nil, ErrTooLarge
	}

	data := buf.Bytes()
	text, enc := parser.Decode(data)
	warnEncoding(name, data, text, enc)
	parsed := parser.ParseText(text)

	return &Result{
		Parse: parsed,
		Stats: Stats{
			Name:        name,
			Bytes:       n,
			Encoding:    enc,
			Fingerprint: fingerprint(data),
			Duration:    time.Since(start),
		},
	}, nil
}

var replacementChar = []byte("\uFFFD")

// warnEncoding logs exports that needed the legacy code page or had bytes
// that could not be decoded.
func warnEncoding(name string, data []byte, text string, enc parser.Encoding) {
	if enc == parser.EncodingEUCKR {
		slog.Warn("export is not UTF-8, decoded as CP949", "name", name)
	}
	if replaced := strings.Count(text, "\uFFFD") - bytes.Count(data, replacementChar); replaced > 0 {
		slog.Warn("export has undecodable bytes", "name", name, "encoding", enc, "replaced", replaced)
	}
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
