package services

import "detectserver/internal/models"

// Detector is the inference-and-drawing boundary the pipeline depends on.
// Implemented by ai.Engine; tests substitute a fake.
type Detector interface {
	// Detect returns the detected objects for the given image bytes.
	// Undecodable input fails with an error wrapping models.ErrImageDecode.
	Detect(imageBytes []byte) ([]models.Detection, error)

	// Annotate renders boxes and labels onto a copy of the image. An empty
	// detection list returns the input unchanged.
	Annotate(imageBytes []byte, detections []models.Detection) ([]byte, error)
}
