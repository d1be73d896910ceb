package types

import "errors"

var (
	ErrNoDataset             = errors.New("no budget dataset found. Import a statement first with the 'import' command")
	ErrNoRecordsExtracted    = errors.New("the extraction returned no budget lines. Check that the statement is legible")
	ErrExtractionFailed      = errors.New("could not extract budget lines from the document")
	ErrInvalidMonth          = errors.New("month must be between 1 and 12")
	ErrInvalidBasis          = errors.New("projection basis must be 'average' or 'thisMonth'")
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrMissingAPIKey         = errors.New("no extraction API key configured. Set GEMINI_API_KEY or extraction.api_key")
	ErrUnsupportedStorage    = errors.New("unsupported storage backend")
)

// ErrDatasetDiscarded is returned alongside an empty dataset when the persisted
// payload could not be decoded and was removed from the store.
var ErrDatasetDiscarded = errors.New("the persisted dataset was corrupt and has been discarded")
