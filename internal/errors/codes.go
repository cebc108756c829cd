// Package errors provides structured error handling for the service.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionEmptyID Code = "SESSION_EMPTY_ID"
	CodeSessionClosed  Code = "SESSION_CLOSED"

	// Channel errors
	CodeChannelInvalidRole   Code = "CHANNEL_INVALID_ROLE"
	CodeChannelInvalidUpdate Code = "CHANNEL_INVALID_UPDATE"

	// Note errors
	CodeNoteEmptyTitle   Code = "NOTE_EMPTY_TITLE"
	CodeNoteEmptyContent Code = "NOTE_EMPTY_CONTENT"

	// Bible highlight errors
	CodeHighlightEmptyReference Code = "HIGHLIGHT_EMPTY_REFERENCE"
	CodeHighlightInvalidRange   Code = "HIGHLIGHT_INVALID_RANGE"

	// Bible note errors
	CodeBibleNoteEmptyText      Code = "BIBLE_NOTE_EMPTY_TEXT"
	CodeBibleNoteEmptyReference Code = "BIBLE_NOTE_EMPTY_REFERENCE"

	// Commentary errors
	CodeCommentaryEmptyBody Code = "COMMENTARY_EMPTY_BODY"

	// Passage proxy errors
	CodePassageEmptyQuery  Code = "PASSAGE_EMPTY_QUERY"
	CodePassageUpstream    Code = "PASSAGE_UPSTREAM_FAILURE"
	CodePassageUnavailable Code = "PASSAGE_UNAVAILABLE"

	// Auth errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeSessionEmptyID,
		CodeChannelInvalidRole,
		CodeChannelInvalidUpdate,
		CodeNoteEmptyTitle,
		CodeNoteEmptyContent,
		CodeHighlightEmptyReference,
		CodeHighlightInvalidRange,
		CodeBibleNoteEmptyText,
		CodeBibleNoteEmptyReference,
		CodeCommentaryEmptyBody,
		CodePassageEmptyQuery:
		return http.StatusBadRequest

	case CodeUnauthenticated:
		return http.StatusUnauthorized

	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - operating on a closed session
	case CodeSessionClosed:
		return http.StatusConflict

	case CodePassageUpstream, CodePassageUnavailable:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
