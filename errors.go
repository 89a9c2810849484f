package trialpack

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrNoTitle       = errors.New("manuscript has no title heading")
	ErrNoTable       = errors.New("no markdown table found")
	ErrNoAuthors     = errors.New("author list cannot be empty")

	// Submission metadata validation errors.
	ErrEmptyManuscriptTitle = errors.New("manuscript title cannot be empty")
)
