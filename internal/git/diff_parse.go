package git

import (
	"log/slog"
	"strconv"
	"strings"
)

// FileStat is the per-file part of a numstat diff
type FileStat struct {
	Insertions int
	Deletions  int
}

// DiffTotals are the running totals over all numstat lines
type DiffTotals struct {
	Insertions int
	Deletions  int
	Lines      int
	Files      int
}

// DiffStats aggregates a numstat diff
type DiffStats struct {
	Total DiffTotals
	Files map[string]FileStat
}

// RawDiffEntry is one line of diff-index / diff-files raw output
type RawDiffEntry struct {
	ModeIndex string
	ModeRepo  string
	Path      string
	SHARepo   string
	SHAIndex  string
	Type      string
}

// ParseNumstat parses "insertions<TAB>deletions<TAB>path" lines. Binary
// files report "-" and count as zero.
func ParseNumstat(lines []string) DiffStats {
	return parseNumstat(lines, discardLogger)
}

func parseNumstat(lines []string, logger *slog.Logger) DiffStats {
	stats := DiffStats{Files: map[string]FileStat{}}
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			logSkipped(logger, "numstat", line)
			continue
		}
		insertions := parseCount(parts[0])
		deletions := parseCount(parts[1])
		path := unquotePath(parts[2])

		stats.Total.Insertions += insertions
		stats.Total.Deletions += deletions
		stats.Total.Lines = stats.Total.Insertions + stats.Total.Deletions
		stats.Total.Files++
		stats.Files[path] = FileStat{Insertions: insertions, Deletions: deletions}
	}
	return stats
}

// ParseRawDiff parses "info<TAB>path" lines where info is
// ":mode_src mode_dest sha_src sha_dest type".
func ParseRawDiff(lines []string) map[string]RawDiffEntry {
	return parseRawDiff(lines, discardLogger)
}

func parseRawDiff(lines []string, logger *slog.Logger) map[string]RawDiffEntry {
	entries := map[string]RawDiffEntry{}
	for _, line := range lines {
		info, file, ok := strings.Cut(line, "\t")
		fields := strings.Fields(info)
		if !ok || len(fields) < 5 {
			logSkipped(logger, "raw diff", line)
			continue
		}
		// renames and copies carry a second path
		if src, _, found := strings.Cut(file, "\t"); found {
			file = src
		}
		path := unquotePath(file)
		entries[path] = RawDiffEntry{
			ModeIndex: fields[1],
			ModeRepo:  modeRepo(fields[0]),
			Path:      path,
			SHARepo:   fields[2],
			SHAIndex:  fields[3],
			Type:      fields[4],
		}
	}
	return entries
}

// modeRepo skips the leading marker character and keeps the next seven
func modeRepo(modeSrc string) string {
	if len(modeSrc) <= 1 {
		return ""
	}
	end := 8
	if len(modeSrc) < end {
		end = len(modeSrc)
	}
	return modeSrc[1:end]
}

// ParseUnmerged collects the paths reported as "Unmerged path <file>" by a
// cached diff.
func ParseUnmerged(lines []string) []string {
	paths := []string{}
	for _, line := range lines {
		line = strings.TrimPrefix(line, "* ")
		if rest, ok := strings.CutPrefix(line, "Unmerged path "); ok {
			paths = append(paths, unquotePath(rest))
		}
	}
	return paths
}

func parseCount(v string) int {
	v = strings.TrimSpace(v)
	if v == "-" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// unquotePath decodes git's C-style quoting of unusual paths
func unquotePath(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		if decoded, err := strconv.Unquote(path); err == nil {
			return decoded
		}
	}
	return path
}

// logSkipped records a line a parser could not use
func logSkipped(logger *slog.Logger, parser, line string) {
	if logger == nil || line == "" {
		return
	}
	logger.Debug("skipped unparseable line", "parser", parser, "line", line)
}
