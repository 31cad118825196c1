package graph

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when a request names no object.
var ErrEmptyID = errors.New("graph object id is empty")

// Error is a Graph API error envelope.
type Error struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	FBTraceID  string `json:"fbtrace_id"`
	StatusCode int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Subcode != 0 {
		return fmt.Sprintf("%s (code %d, subcode %d)", e.Message, e.Code, e.Subcode)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}
