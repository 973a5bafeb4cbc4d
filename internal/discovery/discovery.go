package discovery

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/neilberkman/chatvibe/internal/ingest"
	"github.com/neilberkman/chatvibe/internal/parser"
	"github.com/neilberkman/chatvibe/pkg/platform"
)

// ZipSeparator joins a zip path and an entry name in ExportFile.Path.
const ZipSeparator = "!"

const (
	sniffBytes = 8 << 10
	sniffLines = 30
)

var nameHints = []string{"kakaotalk", "카카오톡", "talk_", "chat"}

var textHints = []string{"님과 카카오톡 대화", "저장한 날짜", "카카오톡 대화"}

// ExportFile represents a discovered KakaoTalk export file
type ExportFile struct {
	Path         string
	Size         int64
	ModTime      time.Time
	IsValid      bool
	ErrorMessage string
	Preview      *ExportPreview
}

// ExportPreview contains basic info about the export
type ExportPreview struct {
	MessageCount int
	Speakers     []string
	DateRange    string
	Encoding     parser.Encoding
}

// Scanner handles discovery of KakaoTalk export files
type Scanner struct {
	searchPaths []string
	logger      *slog.Logger
}

// NewScanner creates a scanner over the download, desktop and documents
// directories.
func NewScanner() *Scanner {
	return &Scanner{searchPaths: platform.ExportSearchDirs(), logger: slog.Default()}
}

// NewScannerWithPaths creates a scanner over exactly paths.
func NewScannerWithPaths(paths ...string) *Scanner {
	return &Scanner{searchPaths: paths, logger: slog.Default()}
}

// AddSearchPath adds an additional directory to search
func (s *Scanner) AddSearchPath(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, existing := range s.searchPaths {
		if existing == path {
			return
		}
	}
	s.searchPaths = append(s.searchPaths, path)
}

// GetSearchPaths returns the list of paths that will be searched
func (s *Scanner) GetSearchPaths() []string {
	return s.searchPaths
}

// ScanForExports finds export files in the configured paths, newest first
func (s *Scanner) ScanForExports() ([]*ExportFile, error) {
	var exports []*ExportFile

	for _, searchPath := range s.searchPaths {
		files, err := s.scanDirectory(searchPath)
		if err != nil {
			s.logger.Warn("failed to scan directory", "path", searchPath, "error", err)
			continue
		}
		exports = append(exports, files...)
	}

	sort.SliceStable(exports, func(i, j int) bool {
		return exports[i].ModTime.After(exports[j].ModTime)
	})

	return exports, nil
}

// GetRecentExports returns exports modified within the specified duration
func (s *Scanner) GetRecentExports(since time.Duration) ([]*ExportFile, error) {
	exports, err := s.ScanForExports()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-since)
	var recent []*ExportFile
	for _, export := range exports {
		if export.ModTime.After(cutoff) {
			recent = append(recent, export)
		}
	}
	return recent, nil
}

// scanDirectory looks at the .txt and .zip files directly inside dir
func (s *Scanner) scanDirectory(dir string) ([]*ExportFile, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var exports []*ExportFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt":
			if export := s.checkTextFile(path); export != nil {
				exports = append(exports, export)
			}
		case ".zip":
			exports = append(exports, s.scanZipFile(path)...)
		}
	}
	return exports, nil
}

func (s *Scanner) checkTextFile(path string) *ExportFile {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	head := make([]byte, sniffBytes)
	n, _ := io.ReadFull(f, head)
	_ = f.Close()

	if !isLikelyKakaoExport(filepath.Base(path), head[:n]) {
		return nil
	}

	export := &ExportFile{Path: path, Size: info.Size(), ModTime: info.ModTime()}
	export.IsValid, export.ErrorMessage, export.Preview = validateAndPreview(ingest.LoadFile(path))
	return export
}

// scanZipFile looks for chat exports inside a zip archive, as shared from
// the mobile app
func (s *Scanner) scanZipFile(zipPath string) []*ExportFile {
	zipInfo, err := os.Stat(zipPath)
	if err != nil {
		return nil
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Warn("failed to close zip reader", "path", zipPath, "error", err)
		}
	}()

	var exports []*ExportFile
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(file.Name), ".txt") {
			continue
		}

		head, err := readZipHead(file)
		if err != nil || !isLikelyKakaoExport(filepath.Base(file.Name), head) {
			continue
		}

		export := &ExportFile{
			Path:    zipPath + ZipSeparator + file.Name,
			Size:    int64(file.UncompressedSize64),
			ModTime: zipInfo.ModTime(),
		}
		export.IsValid, export.ErrorMessage, export.Preview = validateAndPreview(loadZipEntry(file))
		exports = append(exports, export)
	}
	return exports
}

func readZipHead(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close() // best effort for zip entries
	}()
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func loadZipEntry(file *zip.File) (*ingest.Result, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file in zip: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()
	return ingest.Load(filepath.Base(file.Name), rc)
}

// isLikelyKakaoExport checks the file name, then the first lines, for
// signs of a KakaoTalk export
func isLikelyKakaoExport(name string, head []byte) bool {
	lower := strings.ToLower(name)
	for _, hint := range nameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}

	text, _ := parser.Decode(head)
	for _, hint := range textHints {
		if strings.Contains(text, hint) {
			return true
		}
	}

	rules := parser.Rules()
	sc := bufio.NewScanner(bytes.NewReader([]byte(text)))
	for i := 0; i < sniffLines && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		for _, r := range rules {
			if r.Pattern != nil && r.Match(line) {
				return true
			}
		}
	}
	return false
}

func validateAndPreview(res *ingest.Result, err error) (bool, string, *ExportPreview) {
	if err != nil {
		return false, fmt.Sprintf("Cannot read file: %v", err), nil
	}

	p := res.Parse
	if p.ValidMessages == 0 {
		return false, "No chat messages found", nil
	}

	preview := &ExportPreview{
		MessageCount: p.ValidMessages,
		Speakers:     p.Speakers,
		Encoding:     res.Stats.Encoding,
	}
	first, last := p.Messages[0].Date, p.Messages[len(p.Messages)-1].Date
	if first == last {
		preview.DateRange = first
	} else {
		preview.DateRange = first + " ~ " + last
	}
	return true, "", preview
}

// Open returns a reader for a discovered path, including zip entries
// written as "archive.zip!entry.txt".
func Open(path string) (io.ReadCloser, error) {
	zipPath, entry, ok := strings.Cut(path, ZipSeparator)
	if !ok || !strings.EqualFold(filepath.Ext(zipPath), ".zip") {
		return os.Open(path)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	for _, file := range reader.File {
		if file.Name != entry {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			_ = reader.Close()
			return nil, fmt.Errorf("failed to open %s in zip: %w", entry, err)
		}
		return &zipEntryReader{ReadCloser: rc, archive: reader}, nil
	}
	_ = reader.Close()
	return nil, fmt.Errorf("failed to find %s in %s", entry, filepath.Base(zipPath))
}

type zipEntryReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipEntryReader) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
