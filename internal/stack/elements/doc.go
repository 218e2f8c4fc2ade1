// Package elements provides the stackable behaviors shipped with the
// library: database session management, authorization, template selection,
// asynchronous enrichment, request identification, logging, and timeouts.
//
// Each element publishes its per-request state under an exported Key next
// to its constructor, talks to the outside world only through a ports
// interface, and keeps no state on the element instance itself.
package elements
