// Package diff compares realized face snapshots.
package diff

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/alexisbeaulieu97/faces/internal/facecache"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified renders a line diff of before and after in unified format. It
// returns "" when both are equal.
func Unified(before, after []byte, beforeLabel, afterLabel string) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(before), countLines(after))

	written := 0
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if written == maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			written++
		}
	}
	return buf.String()
}

// Snapshots diffs two snapshots face by face. Faces are listed by id with
// their attributes in name order, so a changed attribute shows up as one
// replaced line.
func Snapshots(before, after facecache.Snapshot) string {
	return Unified(render(before), render(after), label(before, "before"), label(after, "after"))
}

func label(s facecache.Snapshot, fallback string) string {
	if s.Surface == "" {
		return fallback
	}
	return fallback + ": " + s.Surface
}

func render(s facecache.Snapshot) []byte {
	faces := append([]facecache.Entry(nil), s.Faces...)
	sort.Slice(faces, func(i, j int) bool { return faces[i].ID < faces[j].ID })

	var buf bytes.Buffer
	for _, f := range faces {
		fmt.Fprintf(&buf, "face %d", f.ID)
		if !f.Base {
			fmt.Fprintf(&buf, " (of %d)", f.BaseID)
		}
		keys := make([]string, 0, len(f.Attrs))
		for k := range f.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, " %s=%v", k, f.Attrs[k])
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func countLines(b []byte) int {
	return len(splitLines(string(b)))
}
