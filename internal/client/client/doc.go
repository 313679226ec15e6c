// Package client maps the five knowledge-entry operations onto the REST
// backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the console store.
// RESTClient implements it over HTTP/JSON against a configurable base URL
// (http://localhost:3001 by default):
//
//	GET    /knowledgeEntries        ListEntries
//	GET    /knowledgeEntries/{id}   GetEntry
//	POST   /knowledgeEntries        CreateEntry
//	PUT    /knowledgeEntries/{id}   UpdateEntry
//	DELETE /knowledgeEntries/{id}   DeleteEntry
//
// CreateEntry assigns the id (decimal Unix milliseconds), the creation date
// (UTC, YYYY-MM-DD) and a zero view count before posting.
//
// # Error Handling
//
// Every failure, network or HTTP, is returned as *TransportError. Its Error
// text is the operation-level message ("Failed to fetch entries", ...);
// Status carries the HTTP status code, or 0 when no response was received.
// Match it with errors.As. There are no retries.
//
// # Concurrency
//
// RESTClient holds no mutable state and is safe for concurrent use. All
// calls honor context cancellation.
package client
