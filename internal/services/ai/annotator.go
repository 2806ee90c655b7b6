package ai

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"detectserver/internal/models"
)

var boxColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}

// minLabelY keeps labels of boxes touching the top edge inside the image.
const minLabelY = 12

// Annotate draws each detection's box and a "label 0.97" caption onto a copy
// of the image and returns it JPEG-encoded. An empty detection list returns
// the input bytes unchanged.
func (e *Engine) Annotate(imageBytes []byte, detections []models.Detection) ([]byte, error) {
	if len(detections) == 0 {
		return imageBytes, nil
	}

	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: decoded image is empty", models.ErrImageDecode)
	}

	for _, det := range detections {
		rect := image.Rect(det.Box[0], det.Box[1], det.Box[2], det.Box[3])
		if err := gocv.Rectangle(&mat, rect, boxColor, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %w", err)
		}

		label := fmt.Sprintf("%s %.2f", det.Label, det.Confidence)
		labelY := det.Box[1] - 5
		if labelY < minLabelY {
			labelY = det.Box[1] + 15
		}
		pt := image.Pt(det.Box[0], labelY)
		if err := gocv.PutText(&mat, label, pt, gocv.FontHersheySimplex, 0.5, boxColor, 1); err != nil {
			return nil, fmt.Errorf("failed to draw label: %w", err)
		}
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotated image: %w", err)
	}
	defer buf.Close()

	annotated := make([]byte, len(buf.GetBytes()))
	copy(annotated, buf.GetBytes())

	return annotated, nil
}
