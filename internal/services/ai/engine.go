package ai

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"detectserver/internal/logger"
	"detectserver/internal/models"
)

const inputSize = 300 // SSD MobileNet input resolution

// Engine wraps a pretrained SSD MobileNet network loaded once per process.
// Forward passes are serialized; the underlying net is not safe for
// concurrent inference.
type Engine struct {
	net       gocv.Net
	threshold float64
	logger    *logger.Logger
	mu        sync.Mutex
}

// NewEngine loads the detection network from the model and config files.
func NewEngine(modelPath, configPath string, threshold float64, log *logger.Logger) (*Engine, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	log.Info("Detection network initialized from %s", modelPath)

	return &Engine{
		net:       net,
		threshold: threshold,
		logger:    log,
	}, nil
}

// Close releases the network.
func (e *Engine) Close() error {
	return e.net.Close()
}

// Detect runs the network on the given image bytes and returns the detected
// objects with pixel-coordinate corner boxes. The input bytes are never
// modified.
func (e *Engine) Detect(imageBytes []byte) ([]models.Detection, error) {
	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: decoded image is empty", models.ErrImageDecode)
	}

	imgWidth := mat.Cols()
	imgHeight := mat.Rows()

	e.mu.Lock()
	defer e.mu.Unlock()

	blob := gocv.BlobFromImage(mat, 1.0/127.5, image.Pt(inputSize, inputSize), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	e.net.SetInput(blob, "")

	output := e.net.Forward("")
	defer output.Close()

	detections := []models.Detection{}

	outputReshaped := output.Reshape(1, output.Total()/7)
	defer outputReshaped.Close()

	for i := 0; i < outputReshaped.Rows(); i++ {
		confidence := float64(outputReshaped.GetFloatAt(i, 2))
		if confidence <= e.threshold {
			continue
		}

		classID := int(outputReshaped.GetFloatAt(i, 1))

		// Coordinates come out normalized; convert to pixels of the
		// original image with a truncating cast.
		x1 := int(outputReshaped.GetFloatAt(i, 3) * float32(imgWidth))
		y1 := int(outputReshaped.GetFloatAt(i, 4) * float32(imgHeight))
		x2 := int(outputReshaped.GetFloatAt(i, 5) * float32(imgWidth))
		y2 := int(outputReshaped.GetFloatAt(i, 6) * float32(imgHeight))

		det := models.Detection{
			Label:      getClassLabel(classID),
			Confidence: roundConfidence(confidence),
			Box:        [4]int{x1, y1, x2, y2},
		}
		det.Clamp(imgWidth, imgHeight)

		detections = append(detections, det)
		e.logger.Info("Detected %s (%.2f) at %v", det.Label, det.Confidence, det.Box)
	}

	return detections, nil
}

// roundConfidence rounds to two decimal digits for storage and display.
func roundConfidence(confidence float64) float64 {
	return math.Round(confidence*100) / 100
}
