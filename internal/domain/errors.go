package domain

import "errors"

// ErrNotFound is returned when the requested entry does not exist in the
// history. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (e.g. an empty
// transcript submitted for generation, or stopping a recording that was never
// started). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBusy is returned when an operation is rejected because a previous
// invocation of the same operation is still in flight (one generation, one
// export, one recording at a time). Handlers should map this to HTTP 409.
var ErrBusy = errors.New("operation already in progress")

// ErrGenerationFailed is returned when either remote generation stage
// (transcript to prompt, or prompt to image) fails. The underlying cause is
// logged; callers surface a single generic message.
var ErrGenerationFailed = errors.New("generation failed")

// ErrExportFailed is returned when bundle assembly fails. No partial bundle
// is ever delivered.
var ErrExportFailed = errors.New("export failed")

// ErrRecordingFailed is returned when the microphone session or the gateway
// connection cannot be established.
var ErrRecordingFailed = errors.New("recording failed")
