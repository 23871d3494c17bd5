package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewkit/prthreads/internal/githubapi"
)

func intPtr(n int) *int {
	return &n
}

func thread(resolved bool, comments ...githubapi.ReviewComment) githubapi.ReviewThread {
	return githubapi.ReviewThread{Resolved: resolved, Comments: comments}
}

func comment(author, path, body string, line *int) githubapi.ReviewComment {
	return githubapi.ReviewComment{Author: author, Path: path, Body: body, Line: line}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)

	assert.Contains(t, out, "(0 threads)")
	assert.Contains(t, out, "Unresolved: 0")
	assert.Contains(t, out, "Resolved: 0")
	assert.NotContains(t, out, "## 🔴 Unresolved")
	assert.NotContains(t, out, "## ✅ Resolved")
}

func TestRenderUnresolvedSectionFirst(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		thread(true, comment("alice", "a.go", "resolved body", intPtr(1))),
		thread(false, comment("bob", "b.go", "unresolved body", intPtr(2))),
	})

	assert.Contains(t, out, "(2 threads)")
	assert.Contains(t, out, "Unresolved: 1")
	assert.Contains(t, out, "Resolved: 1")

	unresolvedSection := strings.Index(out, "## 🔴 Unresolved")
	resolvedSection := strings.Index(out, "## ✅ Resolved")
	require.GreaterOrEqual(t, unresolvedSection, 0)
	require.GreaterOrEqual(t, resolvedSection, 0)
	assert.Less(t, unresolvedSection, resolvedSection)

	assert.Contains(t, out, "### 🔴 UNRESOLVED bob on `b.go:2`")
	assert.Contains(t, out, "### ✅ RESOLVED alice on `a.go:1`")
}

func TestRenderPreservesOrderWithinGroup(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		thread(false, comment("first", "a.go", "x", intPtr(1))),
		thread(true, comment("between", "b.go", "y", intPtr(2))),
		thread(false, comment("second", "c.go", "z", intPtr(3))),
	})

	assert.Less(t, strings.Index(out, "first on"), strings.Index(out, "second on"))
}

func TestRenderSkipsEmptyThreadButCountsIt(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		{Resolved: false},
		thread(false, comment("alice", "a.go", "body", intPtr(1))),
	})

	assert.Contains(t, out, "(2 threads)")
	assert.Contains(t, out, "Unresolved: 2")
	assert.Equal(t, 1, strings.Count(out, "### "))
}

func TestRenderDefaultsForMissingFields(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		thread(false, comment("", "", "orphaned comment", nil)),
	})

	assert.Contains(t, out, "Unknown on `unknown file:?`")
}

func TestRenderOutdatedSuffix(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		{
			Resolved: true,
			Outdated: true,
			Comments: []githubapi.ReviewComment{comment("alice", "a.go", "old", nil)},
		},
	})

	assert.Contains(t, out, "✅ RESOLVED (outdated)")
}

func TestRenderBodyAndDiffVerbatim(t *testing.T) {
	body := "Some *markdown* with `backticks` and <html> left untouched"
	hunk := "@@ -10,4 +10,4 @@\n-old line\n+new line"
	out := Render([]githubapi.ReviewThread{
		{
			Resolved: false,
			Comments: []githubapi.ReviewComment{{
				Author:   "alice",
				Path:     "pkg/x.go",
				Line:     intPtr(12),
				Body:     body,
				DiffHunk: hunk,
				URL:      "https://github.com/acme/widgets/pull/7#discussion_r1",
			}},
		},
	})

	assert.Contains(t, out, body)
	assert.Contains(t, out, "```diff\n"+hunk+"\n```")
	assert.Contains(t, out, "[View on GitHub](https://github.com/acme/widgets/pull/7#discussion_r1)")
}

func TestRenderReplies(t *testing.T) {
	out := Render([]githubapi.ReviewThread{
		thread(false,
			comment("alice", "a.go", "root comment", intPtr(5)),
			comment("bob", "a.go", "first reply", intPtr(5)),
			comment("", "a.go", "reply from deleted account", intPtr(5)),
		),
	})

	assert.Contains(t, out, "Replies:")
	assert.Contains(t, out, "- **bob**: first reply")
	assert.Contains(t, out, "- **Unknown**: reply from deleted account")
	assert.Less(t, strings.Index(out, "first reply"), strings.Index(out, "reply from deleted account"))
}

func TestRenderPartitionIsComplete(t *testing.T) {
	threads := []githubapi.ReviewThread{
		thread(false, comment("a", "a.go", "1", nil)),
		thread(true, comment("b", "b.go", "2", nil)),
		thread(true, comment("c", "c.go", "3", nil)),
		{Resolved: false},
	}

	out := Render(threads)

	assert.Contains(t, out, "(4 threads)")
	assert.Contains(t, out, "Unresolved: 2")
	assert.Contains(t, out, "Resolved: 2")
	// Every thread section closes with a rule; only non-empty threads render.
	assert.Equal(t, 3, strings.Count(out, "\n---\n"))
}
