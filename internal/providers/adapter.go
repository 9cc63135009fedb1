// Package providers translates generic describe-this-image requests into
// the request/response contracts of the upstream vision APIs.
package providers

import "context"

// Adapter is one upstream vision API. The model argument may be empty, in
// which case the adapter's configured default is used.
type Adapter interface {
	Describe(ctx context.Context, apiKey, model, prompt, imageURL string) (string, error)
}
