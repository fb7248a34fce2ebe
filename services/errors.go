package services

import "errors"

// Sentinel errors controllers map to HTTP statuses. ErrForbidden is kept
// distinct from the not-found errors so an owned-by-someone-else resource
// answers 403, not 404.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("forbidden")
)
