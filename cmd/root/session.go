package root

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/discovery"
	"github.com/neilberkman/chatvibe/internal/enrich"
	"github.com/neilberkman/chatvibe/internal/export"
	"github.com/neilberkman/chatvibe/internal/ingest"
	"github.com/neilberkman/chatvibe/internal/lexicon"
)

// LoadExport reads the export named on the command line. "-" reads stdin
// and "archive.zip!chat.txt" reads one entry of a zip.
func LoadExport(path string) (*ingest.Result, error) {
	if path == "-" {
		return ingest.Load("stdin", os.Stdin)
	}

	archive, _, ok := strings.Cut(path, discovery.ZipSeparator)
	if !ok || !strings.EqualFold(filepath.Ext(archive), ".zip") {
		return ingest.LoadFile(path)
	}

	rc, err := discovery.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()
	return ingest.Load(filepath.Base(path), rc)
}

// Lexicon returns the configured word lists.
func Lexicon() (*lexicon.Lexicon, error) {
	path := config.Get().Analysis.LexiconPath
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lex, nil
}

// Enricher returns a client for the configured model. It is disabled
// unless enrich.enabled is set and an API key is available.
func Enricher() *enrich.Client {
	return enrich.NewClient(config.Get().EnrichConfig())
}

// Meta describes res for report headers.
func Meta(res *ingest.Result, speakers int) export.Meta {
	name := strings.TrimSuffix(res.Stats.Name, filepath.Ext(res.Stats.Name))
	return export.Meta{
		Name:      name,
		Bytes:     res.Stats.Bytes,
		StartDate: res.Parse.ConversationStartDate,
		Messages:  res.Parse.ValidMessages,
		Speakers:  speakers,
		Generated: time.Now(),
	}
}
