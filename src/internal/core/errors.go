package core

import (
	"errors"
	"fmt"
	"io/fs"
)

// Failure classes reported by a FastTransfer backend and by the copy loops.
var (
	// ErrNotImplemented means the running kernel does not provide the
	// zero-copy primitive at all. The engine stops trying it for good.
	ErrNotImplemented = errors.New("zero-copy transfer not implemented by kernel")

	// ErrInvalidArgument means the primitive rejected this particular
	// source/destination pair. The engine falls back for the current file only.
	ErrInvalidArgument = errors.New("zero-copy transfer not supported for descriptor")

	// ErrShortWrite is returned when the destination accepted fewer bytes than offered.
	ErrShortWrite = errors.New("short write")

	// ErrRunFailed is returned by Runner.Run when at least one input failed.
	ErrRunFailed = errors.New("one or more inputs failed")
)

// ErrorCategory represents different types of errors
type ErrorCategory int

// Error categories for classification
const (
	CategoryUnknown ErrorCategory = iota
	CategoryUsage
	CategoryOpen
	CategoryStat
	CategoryRead
	CategoryWrite
	CategoryTransfer
	CategoryClose
)

func (ec ErrorCategory) String() string {
	switch ec {
	case CategoryUsage:
		return "Usage"
	case CategoryOpen:
		return "Open"
	case CategoryStat:
		return "Stat"
	case CategoryRead:
		return "Read"
	case CategoryWrite:
		return "Write"
	case CategoryTransfer:
		return "Transfer"
	case CategoryClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Fatal reports whether an error of this category ends the whole run
// instead of just the current input.
func (ec ErrorCategory) Fatal() bool {
	return ec == CategoryUsage || ec == CategoryClose
}

// TransferError is a categorized failure for a single input.
type TransferError struct {
	Category  ErrorCategory
	Operation string
	Path      string
	Err       error
}

func (te *TransferError) Error() string {
	if te.Path == "" {
		return fmt.Sprintf("%s: %v", te.Operation, te.Err)
	}

	return fmt.Sprintf("%s %s: %v", te.Operation, te.Path, te.Err)
}

func (te *TransferError) Unwrap() error {
	return te.Err
}

func newTransferError(category ErrorCategory, operation string, err error) *TransferError {
	return &TransferError{
		Category:  category,
		Operation: operation,
		Err:       err,
	}
}

// ClassifyTransferError returns the category carried by err, or a best guess
// for errors that did not come from the engine.
func ClassifyTransferError(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var te *TransferError
	if errors.As(err, &te) {
		return te.Category
	}

	if errors.Is(err, ErrShortWrite) {
		return CategoryWrite
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		switch pathErr.Op {
		case "open":
			return CategoryOpen
		case "read":
			return CategoryRead
		case "write":
			return CategoryWrite
		case "close":
			return CategoryClose
		case "stat", "fstat":
			return CategoryStat
		}
	}

	return CategoryUnknown
}

// ErrorHandler manages error collection and reporting
type ErrorHandler struct {
	errors    []*TransferError
	maxErrors int
}

// NewErrorHandler creates a new error handler with the specified maximum error count.
func NewErrorHandler(maxErrors int) *ErrorHandler {
	if maxErrors <= 0 {
		maxErrors = 1000
	}

	return &ErrorHandler{
		errors:    make([]*TransferError, 0),
		maxErrors: maxErrors,
	}
}

// AddError records err against path. Errors that are not already a
// *TransferError are classified first.
func (eh *ErrorHandler) AddError(path string, err error) {
	var te *TransferError
	if !errors.As(err, &te) {
		te = &TransferError{
			Category:  ClassifyTransferError(err),
			Operation: "cat",
			Err:       err,
		}
	}

	if te.Path == "" {
		te.Path = path
	}

	if len(eh.errors) >= eh.maxErrors {
		// Remove oldest error to make room
		eh.errors = eh.errors[1:]
	}

	eh.errors = append(eh.errors, te)
}

// GetErrors returns all collected errors.
func (eh *ErrorHandler) GetErrors() []*TransferError {
	result := make([]*TransferError, len(eh.errors))
	copy(result, eh.errors)

	return result
}

// GetErrorsByCategory returns errors of a specific category.
func (eh *ErrorHandler) GetErrorsByCategory(category ErrorCategory) []*TransferError {
	var result []*TransferError

	for _, err := range eh.errors {
		if err.Category == category {
			result = append(result, err)
		}
	}

	return result
}

// HasErrors returns true if any errors have been collected.
func (eh *ErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

// ErrorCount returns the total number of errors.
func (eh *ErrorHandler) ErrorCount() int {
	return len(eh.errors)
}

// GetSummary returns a summary of errors by category.
func (eh *ErrorHandler) GetSummary() map[ErrorCategory]int {
	summary := make(map[ErrorCategory]int)
	for _, err := range eh.errors {
		summary[err.Category]++
	}

	return summary
}

// Err joins the collected errors under ErrRunFailed, or returns nil.
func (eh *ErrorHandler) Err() error {
	if len(eh.errors) == 0 {
		return nil
	}

	errs := make([]error, 0, len(eh.errors)+1)
	errs = append(errs, ErrRunFailed)

	for _, err := range eh.errors {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
