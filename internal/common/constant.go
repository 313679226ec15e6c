package common

// RequestIDHeaderName is the HTTP header used to correlate console requests
// with backend log lines.
const RequestIDHeaderName = "X-Request-ID"

// EntriesResource is the collection path segment of the REST API.
const EntriesResource = "knowledgeEntries"
