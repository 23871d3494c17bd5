// Package githubapi provides minimal GitHub API models for GraphQL responses.
package githubapi

// ReviewComment is a single comment inside a review thread.
type ReviewComment struct {
	// ID is the GitHub comment database ID.
	ID int
	// Author is the GitHub login of the comment author. Empty when the
	// account has been deleted.
	Author string
	// Body is the raw markdown body of the comment.
	Body string
	// Path is the file the comment is anchored to.
	Path string
	// Line is the anchored line number, nil for outdated diff positions.
	Line *int
	// DiffHunk is the changed-code context the comment was attached to.
	DiffHunk string
	// URL is the canonical permalink of the comment.
	URL string
}

// ReviewThread is a review conversation anchored to a file/line. The first
// comment is the originating one; the rest are replies in creation order.
type ReviewThread struct {
	Comments []ReviewComment
	Resolved bool
	Outdated bool
}

// Repository and pull request are pointers so a response missing the
// expected nesting path is distinguishable from a PR with no threads.
type reviewThreadsResponse struct {
	Data struct {
		Repository *repositoryNode `json:"repository"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type repositoryNode struct {
	PullRequest *pullRequestNode `json:"pullRequest"`
}

type pullRequestNode struct {
	ReviewThreads struct {
		Nodes []threadNode `json:"nodes"`
	} `json:"reviewThreads"`
}

type threadNode struct {
	IsResolved bool `json:"isResolved"`
	IsOutdated bool `json:"isOutdated"`
	Comments   struct {
		Nodes []commentNode `json:"nodes"`
	} `json:"comments"`
}

type commentNode struct {
	DatabaseID int    `json:"databaseId"`
	Body       string `json:"body"`
	Path       string `json:"path"`
	Line       *int   `json:"line"`
	DiffHunk   string `json:"diffHunk"`
	URL        string `json:"url"`
	Author     *struct {
		Login string `json:"login"`
	} `json:"author"`
}
