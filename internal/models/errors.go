package models

import "errors"

// Failure classes surfaced by the detection pipeline. Handlers map these
// to HTTP status codes with errors.Is.
var (
	// ErrInvalidInput means the uploaded content is not an image.
	ErrInvalidInput = errors.New("uploaded file is not an image")

	// ErrImageDecode means the bytes could not be decoded into pixels.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrDetectionFailed means the model invocation itself failed.
	ErrDetectionFailed = errors.New("object detection failed")
)
