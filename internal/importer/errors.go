package importer

import "fmt"

// ParseError indicates a file that could not be turned into rows
// (wrong type, empty, malformed). It aborts the whole import attempt.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// ResolutionError indicates a campaign reference that does not match any
// campaign in the directory snapshot. Row is the 1-based display row
// number (data row N is reported as row N+1 to account for the header).
type ResolutionError struct {
	Row       int
	Reference string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("Row %d: Campaign %q not found. Please use a valid campaign name.", e.Row, e.Reference)
}
