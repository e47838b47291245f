// Package domain defines the image pipeline ports
package domain

import (
	"context"

	pipedom "brandwatch/internal/services/pipeline/domain"
	wmdom "brandwatch/internal/services/watermark/domain"
)

// Verdict is the vision backend's judgement for one image
type Verdict struct {
	LogoMatch    bool
	Confidence   float64
	Explanations []string
}

// VisionPort analyzes a single image for brand logo presence
type VisionPort interface {
	Analyze(ctx context.Context, imageURL string, keywords []string) (Verdict, error)
}

// Ports are dependencies injected into the images module
type Ports struct {
	Search pipedom.SearchPort // required
	Vision VisionPort         // required
	Marks  wmdom.StorePort    // required
}
