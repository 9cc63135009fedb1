package providers

// UpstreamError reports a failed round trip to a provider API or to the
// image host. Status is the HTTP status the caller should propagate.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// SafetyBlockError means the upstream model refused the image on content
// policy grounds. Surfaced to the user as a 400, not a generic failure.
type SafetyBlockError struct {
	Message string
}

func (e *SafetyBlockError) Error() string {
	return e.Message
}

// ContractError means the upstream reply matched none of the known response
// shapes. Debug carries a bounded summary of what was present, never the
// full payload.
type ContractError struct {
	Message string
	Debug   map[string]interface{}
}

func (e *ContractError) Error() string {
	return e.Message
}
