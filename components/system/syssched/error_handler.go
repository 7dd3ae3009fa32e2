package syssched

// ErrorHandler handles errors returned by a periodically executed task.
type ErrorHandler interface {
	// HandleError handles error.
	HandleError(err error)
}
