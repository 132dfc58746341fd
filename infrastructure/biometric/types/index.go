package types

// These types mirror the output contract of the external capture/detection
// service. The detector and liveness model are not implemented here; callers
// submit the DetectionResult produced by the capture adapter.

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type DetectedFace struct {
	Box        BoundingBox `json:"box"`
	Landmarks  []Landmark  `json:"landmarks"`
	Confidence float64     `json:"confidence" validate:"gte=0,lte=1"`
	Embedding  []float32   `json:"embedding" validate:"required"`
}

type DetectionResult struct {
	Faces            []DetectedFace `json:"faces"`
	IsLive           bool           `json:"is_live"`
	Quality          float64        `json:"quality" validate:"gte=0,lte=1"`
	ProcessingTimeMs int            `json:"processing_time_ms"`
}
