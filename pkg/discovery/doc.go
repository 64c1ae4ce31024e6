// Package discovery turns discovery requests into registry observations.
//
// A Dispatcher issues one SDK discovery request per call. Each response the
// SDK delivers becomes an observation in the device registry; the registry,
// not the dispatcher, deduplicates re-broadcasts and applies the precedence
// of owned over unowned. Discovery is streaming: the returned handle only
// says the request went out, and results keep arriving until the tool
// shuts down. Finding nothing is not an error.
//
// Resource discovery works the same way for the resources of one device,
// except that results are handed to the caller instead of the registry.
package discovery
