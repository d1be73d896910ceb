package entity

// ExtractionResult is the outcome of a document extraction: either a list of
// sanitised ledger lines or a failure reason. Build it with ExtractionOK or
// ExtractionFailed.
type ExtractionResult struct {
	lines  []LedgerLine
	reason string
	failed bool
}

// ExtractionOK wraps a successfully sanitised list of lines.
func ExtractionOK(lines []LedgerLine) ExtractionResult {
	if lines == nil {
		lines = []LedgerLine{}
	}
	return ExtractionResult{lines: lines}
}

// ExtractionFailed records why an extraction produced no usable data.
func ExtractionFailed(reason string) ExtractionResult {
	return ExtractionResult{reason: reason, failed: true}
}

// Lines returns the extracted lines and true, or nil and false on failure.
func (r ExtractionResult) Lines() ([]LedgerLine, bool) {
	if r.failed {
		return nil, false
	}
	return r.lines, true
}

// Failed returns the failure reason and true when the extraction failed.
func (r ExtractionResult) Failed() (string, bool) {
	return r.reason, r.failed
}
