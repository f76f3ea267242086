package git

import (
	"log/slog"
	"strconv"
	"strings"
)

// TreeEntry is the mode and object id of one tree listing line
type TreeEntry struct {
	Mode string
	SHA  string
}

// TreeListing buckets ls-tree output by object type. Commit holds gitlink
// (submodule) entries.
type TreeListing struct {
	Blob   map[string]TreeEntry
	Tree   map[string]TreeEntry
	Commit map[string]TreeEntry
}

// IndexEntry is one line of "ls-files --stage"
type IndexEntry struct {
	Path  string
	Mode  string
	SHA   string
	Stage string
}

// NewTreeListing returns a listing with empty buckets
func NewTreeListing() TreeListing {
	return TreeListing{
		Blob:   map[string]TreeEntry{},
		Tree:   map[string]TreeEntry{},
		Commit: map[string]TreeEntry{},
	}
}

// ParseTree parses "mode type sha<TAB>name" lines
func ParseTree(lines []string) TreeListing {
	return parseTree(lines, discardLogger)
}

func parseTree(lines []string, logger *slog.Logger) TreeListing {
	listing := NewTreeListing()
	for _, line := range lines {
		info, name, ok := strings.Cut(line, "\t")
		fields := strings.Fields(info)
		if !ok || len(fields) < 3 {
			logSkipped(logger, "ls-tree", line)
			continue
		}
		entry := TreeEntry{Mode: fields[0], SHA: fields[2]}
		name = unquotePath(name)
		switch fields[1] {
		case "blob":
			listing.Blob[name] = entry
		case "tree":
			listing.Tree[name] = entry
		case "commit":
			listing.Commit[name] = entry
		default:
			logSkipped(logger, "ls-tree", line)
		}
	}
	return listing
}

// ParseIndex parses "mode sha stage<TAB>path" lines keyed by path
func ParseIndex(lines []string) map[string]IndexEntry {
	return parseIndex(lines, discardLogger)
}

func parseIndex(lines []string, logger *slog.Logger) map[string]IndexEntry {
	entries := map[string]IndexEntry{}
	for _, line := range lines {
		info, file, ok := strings.Cut(line, "\t")
		fields := strings.Fields(info)
		if !ok || len(fields) < 3 {
			logSkipped(logger, "ls-files", line)
			continue
		}
		path := unquotePath(file)
		entries[path] = IndexEntry{
			Path:  path,
			Mode:  fields[0],
			SHA:   fields[1],
			Stage: fields[2],
		}
	}
	return entries
}

// ParseTreeDepth counts the entries of a recursive "ls-tree -r" listing
func ParseTreeDepth(lines []string) int {
	count := 0
	for _, line := range lines {
		if strings.Contains(line, "\t") {
			count++
		}
	}
	return count
}

// ParseObjectSize reads the integer printed by "cat-file -s"
func ParseObjectSize(output string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(output), 10, 64)
}
