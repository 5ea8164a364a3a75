// Package http implements the HTTP handlers of the survey analytics service.
// Handlers are a thin layer between HTTP transport and the service layer:
// they parse and validate requests, call a service and render the result.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Source
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Error Handling
//
// All errors are rendered as RFC 7807 Problem Details by the shared
// ErrorHandler, which maps service sentinel errors to status codes:
//
//	{
//	    "type": "/errors/export/unsupported-format",
//	    "title": "Unsupported Export Format",
//	    "status": 400,
//	    "detail": "unsupported export format: pdf",
//	    "instance": "/api/questionnaires/s1/export"
//	}
//
// # Exports
//
// Export endpoints stream the rendered file as an attachment and set an
// ETag derived from the content digest, so unchanged exports answer
// conditional requests with 304 Not Modified.
package http
