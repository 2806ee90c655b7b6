package models

import "time"

// Detection represents one detected object: class label, confidence and
// bounding box [x1, y1, x2, y2] in pixel coordinates of the original image.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        [4]int  `json:"box"`
}

// Clamp restricts the bounding box to the image bounds and orders the
// corners so that x1 <= x2 and y1 <= y2.
func (d *Detection) Clamp(width, height int) {
	x1, y1, x2, y2 := d.Box[0], d.Box[1], d.Box[2], d.Box[3]

	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	d.Box[0] = clamp(x1, 0, width)
	d.Box[1] = clamp(y1, 0, height)
	d.Box[2] = clamp(x2, 0, width)
	d.Box[3] = clamp(y2, 0, height)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DetectionRecord couples a stored upload with its detections and the
// annotated-image reference. Records are created once and never updated.
type DetectionRecord struct {
	ID             int64       `json:"id"`
	Filename       string      `json:"filename"`
	Detections     []Detection `json:"detections"`
	AnnotatedImage string      `json:"annotated_image"` // empty when no annotated copy exists
	Timestamp      time.Time   `json:"timestamp"`
}
