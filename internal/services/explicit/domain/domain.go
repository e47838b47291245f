// Package domain wires the explicit-text pipeline dependencies
package domain

import (
	pipedom "brandwatch/internal/services/pipeline/domain"
	wmdom "brandwatch/internal/services/watermark/domain"
)

// Ports are dependencies injected into the explicit module
type Ports struct {
	Search pipedom.SearchPort // required
	Marks  wmdom.StorePort    // required
}
