package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetection_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		box      [4]int
		expected [4]int
	}{
		{"inside bounds", [4]int{10, 20, 100, 200}, [4]int{10, 20, 100, 200}},
		{"negative corner", [4]int{-5, -10, 50, 60}, [4]int{0, 0, 50, 60}},
		{"beyond bounds", [4]int{100, 100, 900, 900}, [4]int{100, 100, 640, 480}},
		{"swapped corners", [4]int{150, 200, 50, 60}, [4]int{50, 60, 150, 200}},
		{"fully outside", [4]int{-100, -100, -10, -10}, [4]int{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := Detection{Box: tt.box}
			det.Clamp(640, 480)

			assert.Equal(t, tt.expected, det.Box)
			assert.LessOrEqual(t, det.Box[0], det.Box[2])
			assert.LessOrEqual(t, det.Box[1], det.Box[3])
		})
	}
}

func TestDetection_JSONShape(t *testing.T) {
	det := Detection{Label: "person", Confidence: 0.98, Box: [4]int{50, 50, 150, 200}}

	data, err := json.Marshal(det)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"person","confidence":0.98,"box":[50,50,150,200]}`, string(data))
}

func TestDetection_JSONRoundTrip(t *testing.T) {
	var det Detection
	err := json.Unmarshal([]byte(`{"label":"dog","confidence":0.87,"box":[200,80,300,220]}`), &det)
	require.NoError(t, err)

	assert.Equal(t, Detection{Label: "dog", Confidence: 0.87, Box: [4]int{200, 80, 300, 220}}, det)
}
