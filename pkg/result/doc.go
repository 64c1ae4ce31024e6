// Package result defines how asynchronous SDK operations report their outcome.
//
// Every accepted request completes exactly once with a Result: either a value
// or an error. Failures reported by a device or by the SDK after the request
// was accepted are *Failure values carrying a reason Code.
//
// A Pending collects the single completion of one request:
//
//	p := result.NewPending[[]cred.Credential]()
//	handle := sdk.RetrieveCredentials(id, p.Resolve)
//	...
//	r, err := p.Wait(ctx)
//
// Completions are delivered on SDK goroutines. Pending itself is safe for
// concurrent use; a second completion for the same request is dropped.
package result
