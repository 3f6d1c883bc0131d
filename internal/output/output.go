// Package output writes the JSON envelope used by the --json flags.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hmans/authors/internal/author"
)

// Error codes.
const (
	ErrNotFound   = "NOT_FOUND"
	ErrValidation = "VALIDATION_ERROR"
	ErrServer     = "SERVER_ERROR"
)

// Writer is where responses go. Tests swap it out.
var Writer io.Writer = os.Stdout

// ErrJSONOutput is returned after an error response has been written, so
// the caller exits non-zero without printing the error a second time.
var ErrJSONOutput = errors.New("error written as JSON")

// Response is the JSON envelope.
type Response struct {
	Success bool             `json:"success"`
	Author  *author.Author   `json:"author,omitempty"`
	Authors []*author.Author `json:"authors,omitempty"`
	Count   *int             `json:"count,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Code    string           `json:"code,omitempty"`
}

// JSON writes v with indentation.
func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

// Success writes a single author.
func Success(a *author.Author, message string) error {
	return JSON(Response{Success: true, Author: a, Message: message})
}

// SuccessMultiple writes a list of authors.
func SuccessMultiple(authors []*author.Author) error {
	n := len(authors)
	return JSON(Response{Success: true, Authors: authors, Count: &n})
}

// SuccessMessage writes a bare confirmation.
func SuccessMessage(message string) error {
	return JSON(Response{Success: true, Message: message})
}

// Error writes an error response and returns ErrJSONOutput.
func Error(code, message string) error {
	if err := JSON(Response{Success: false, Error: message, Code: code}); err != nil {
		return err
	}
	return ErrJSONOutput
}
