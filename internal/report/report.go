// Package report renders review threads as a Markdown document.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reviewkit/prthreads/internal/githubapi"
)

// Render produces the full Markdown report for a set of review threads.
// Unresolved threads come first; within each group the source order is kept.
// Thread counts are over fetched threads, so a thread whose comments were all
// deleted still counts even though it renders no block.
func Render(threads []githubapi.ReviewThread) string {
	unresolved := make([]githubapi.ReviewThread, 0, len(threads))
	resolved := make([]githubapi.ReviewThread, 0, len(threads))
	for _, t := range threads {
		if t.Resolved {
			resolved = append(resolved, t)
		} else {
			unresolved = append(unresolved, t)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# PR Review Threads (%d threads)\n\n", len(threads))
	fmt.Fprintf(&b, "Unresolved: %d\n", len(unresolved))
	fmt.Fprintf(&b, "Resolved: %d\n", len(resolved))

	if len(unresolved) > 0 {
		b.WriteString("\n## 🔴 Unresolved\n")
		for _, t := range unresolved {
			writeThread(&b, t)
		}
	}
	if len(resolved) > 0 {
		b.WriteString("\n## ✅ Resolved\n")
		for _, t := range resolved {
			writeThread(&b, t)
		}
	}

	return b.String()
}

func writeThread(b *strings.Builder, t githubapi.ReviewThread) {
	if len(t.Comments) == 0 {
		return
	}
	first := t.Comments[0]

	status := "✅ RESOLVED"
	if !t.Resolved {
		status = "🔴 UNRESOLVED"
	}
	if t.Outdated {
		status += " (outdated)"
	}

	line := "?"
	if first.Line != nil {
		line = strconv.Itoa(*first.Line)
	}

	fmt.Fprintf(b, "\n### %s %s on `%s:%s`\n\n", status, authorOrDefault(first.Author), pathOrDefault(first.Path), line)

	if first.URL != "" {
		fmt.Fprintf(b, "[View on GitHub](%s)\n\n", first.URL)
	}
	if first.DiffHunk != "" {
		fmt.Fprintf(b, "```diff\n%s\n```\n\n", first.DiffHunk)
	}
	fmt.Fprintf(b, "%s\n", first.Body)

	if len(t.Comments) > 1 {
		b.WriteString("\nReplies:\n\n")
		for _, reply := range t.Comments[1:] {
			fmt.Fprintf(b, "- **%s**: %s\n", authorOrDefault(reply.Author), reply.Body)
		}
	}

	b.WriteString("\n---\n")
}

func authorOrDefault(author string) string {
	if author == "" {
		return "Unknown"
	}
	return author
}

func pathOrDefault(path string) string {
	if path == "" {
		return "unknown file"
	}
	return path
}
