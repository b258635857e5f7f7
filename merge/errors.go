package merge

// This error type is returned when the extractor graph has no node of the
// software-record type to anchor the merge. The caller must treat upstream
// extraction as failed.
type MissingPrimaryNodeError struct{}

func (e MissingPrimaryNodeError) Error() string {
	return "no software-record node found in the extractor graph"
}
