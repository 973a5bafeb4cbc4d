package discover

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/chatvibe/internal/discovery"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	includePaths   []string
	recent         bool
	recentDuration string
	showInvalid    bool
	showPaths      bool
)

// DiscoverCmd represents the discover command
var DiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find KakaoTalk export files in common locations",
	Long: `Discover KakaoTalk chat exports in your Downloads, Desktop and Documents folders.

Text files and zip archives are checked for KakaoTalk timestamps, then parsed
to preview their speakers and date range.

Examples:
  chatvibe discover                          # Find all exports
  chatvibe discover --recent                 # Find exports from last 7 days
  chatvibe discover --recent --duration 30d  # Find exports from last 30 days
  chatvibe discover --include ~/chats        # Also search another folder
  chatvibe discover --show-invalid           # Show files that look like exports but have no messages`,
	RunE: runDiscover,
}

func init() {
	DiscoverCmd.Flags().StringSliceVarP(&includePaths, "include", "i", nil, "additional directories to search")
	DiscoverCmd.Flags().BoolVarP(&recent, "recent", "r", false, "only show recent exports (last 7 days)")
	DiscoverCmd.Flags().StringVarP(&recentDuration, "duration", "d", "7d", "duration for recent exports (e.g., 1h, 24h, 7d, 30d)")
	DiscoverCmd.Flags().BoolVar(&showInvalid, "show-invalid", false, "show files that look like exports but are invalid")
	DiscoverCmd.Flags().BoolVar(&showPaths, "show-paths", false, "show which directories are being searched")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scanner := discovery.NewScanner()
	for _, path := range includePaths {
		scanner.AddSearchPath(path)
	}

	if showPaths {
		fmt.Fprintln(out, "Searching in:")
		for _, path := range scanner.GetSearchPaths() {
			fmt.Fprintf(out, "  - %s\n", path)
		}
		fmt.Fprintln(out)
	}

	var (
		exports []*discovery.ExportFile
		err     error
	)
	if recent {
		duration, perr := parseDuration(recentDuration)
		if perr != nil {
			return fmt.Errorf("invalid duration '%s': %w", recentDuration, perr)
		}
		exports, err = scanner.GetRecentExports(duration)
	} else {
		exports, err = scanner.ScanForExports()
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var display []*discovery.ExportFile
	for _, export := range exports {
		if export.IsValid || showInvalid {
			display = append(display, export)
		}
	}

	if len(display) == 0 {
		if recent {
			fmt.Fprintln(out, "No KakaoTalk exports found in the specified time range.")
		} else {
			fmt.Fprintln(out, "No KakaoTalk exports found.")
		}
		fmt.Fprintln(out, "\nTip: Try 'chatvibe discover --show-invalid' to see files that look like exports but couldn't be parsed.")
		return nil
	}

	return displayExportTable(out, display)
}

func displayExportTable(w io.Writer, exports []*discovery.ExportFile) error {
	t := rendering.NewTable("STATUS", "FILE", "SIZE", "MODIFIED", "SPEAKERS", "MSGS", "DATE RANGE")
	t.MaxCellWidth = 40

	validCount := 0
	for _, export := range exports {
		status := "✓"
		if export.IsValid {
			validCount++
		} else {
			status = "✗"
		}

		speakers, msgs, dateRange := "-", "-", "-"
		if p := export.Preview; p != nil {
			speakers = strconv.Itoa(len(p.Speakers))
			msgs = humanize.Comma(int64(p.MessageCount))
			dateRange = p.DateRange
		}

		t.AddRow(status, displayName(export.Path), humanize.Bytes(uint64(export.Size)),
			humanize.Time(export.ModTime), speakers, msgs, dateRange)
	}
	if err := t.Render(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nFound %d file(s): %d valid, %d invalid\n", len(exports), validCount, len(exports)-validCount)

	for _, export := range exports {
		if !export.IsValid {
			fmt.Fprintf(w, "⚠️  %s: %s\n", displayName(export.Path), export.ErrorMessage)
		}
	}

	for _, export := range exports {
		if export.IsValid {
			fmt.Fprintln(w, "\nTo analyze a file:")
			fmt.Fprintf(w, "  chatvibe vibe %q\n", export.Path)
			break
		}
	}
	return nil
}

// displayName shortens a path to its file name, keeping the zip entry.
func displayName(path string) string {
	if archive, entry, ok := strings.Cut(path, discovery.ZipSeparator); ok {
		return filepath.Base(archive) + discovery.ZipSeparator + filepath.Base(entry)
	}
	return filepath.Base(path)
}

func parseDuration(s string) (time.Duration, error) {
	// Handle simple cases like "7d", "30d"
	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
