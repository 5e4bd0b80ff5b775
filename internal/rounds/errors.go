package rounds

import "fmt"

// ExtractionFailure records a round that could not be extracted. It is
// non-fatal: the pipeline logs it, keeps it for the final summary, and
// moves on to the next round.
type ExtractionFailure struct {
	URL    string
	Reason string
	Err    error
}

func (e *ExtractionFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
}

func (e *ExtractionFailure) Unwrap() error { return e.Err }

// ShapeError means the embedded payload was present but malformed: invalid
// JSON, missing mandatory fields, or no hole data. It surfaces wrapped in
// an ExtractionFailure.
type ShapeError struct {
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed scorecard payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed scorecard payload: %s", e.Reason)
}

func (e *ShapeError) Unwrap() error { return e.Err }
