package client

import (
	"fmt"
	"net/http"
)

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func StatusCodeRangeOf(resp *http.Response) StatusCodeRange {
	return statusCodeRange(resp.StatusCode)
}

func statusCodeRange(c int) StatusCodeRange {
	switch {
	case 100 <= c && c < 200:
		return Status1xx
	case 200 <= c && c < 300:
		return Status2xx
	case 300 <= c && c < 400:
		return Status3xx
	case 400 <= c && c < 500:
		return Status4xx
	case 500 <= c && c < 600:
		return Status5xx
	}
	return StatusUnknown
}

func (s StatusCodeRange) OK() bool {
	return s == Status2xx
}

func (s StatusCodeRange) String() string {
	switch s {
	case Status1xx, Status2xx, Status3xx, Status4xx, Status5xx:
		return fmt.Sprintf("%dxx", int(s))
	}
	return "unknown"
}
