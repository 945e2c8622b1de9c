package quill

// DefaultFace is the face used when a font descriptor has an empty face
// name. Descriptors with no face deliberately fall back to it instead of
// failing.
const DefaultFace = "Helvetica"

// Font describes the current text face and size.
type Font struct {
	// Face is the face name, e.g. "Helvetica" or "Courier-Bold".
	// An empty face selects DefaultFace.
	Face string

	// Size is the font size in user space units.
	Size float64
}

// faceMetrics holds AFM-style metrics in 1000-unit glyph space.
// Extents are computed as metric * size / 1000.
type faceMetrics struct {
	Ascent   float64
	Descent  float64 // positive distance below the baseline
	AvgWidth float64 // average glyph advance, used when the sink cannot measure
	Fixed    bool    // monospaced face: AvgWidth is the exact advance
}

// Metrics for the standard faces. Unknown faces fall back to the
// DefaultFace entry.
var faceMetricsTable = map[string]faceMetrics{
	"Helvetica":             {Ascent: 718, Descent: 207, AvgWidth: 513},
	"Helvetica-Bold":        {Ascent: 718, Descent: 207, AvgWidth: 532},
	"Helvetica-Oblique":     {Ascent: 718, Descent: 207, AvgWidth: 513},
	"Helvetica-BoldOblique": {Ascent: 718, Descent: 207, AvgWidth: 532},
	"Times-Roman":           {Ascent: 683, Descent: 217, AvgWidth: 489},
	"Times-Bold":            {Ascent: 683, Descent: 217, AvgWidth: 508},
	"Times-Italic":          {Ascent: 683, Descent: 217, AvgWidth: 478},
	"Courier":               {Ascent: 629, Descent: 157, AvgWidth: 600, Fixed: true},
	"Courier-Bold":          {Ascent: 629, Descent: 157, AvgWidth: 600, Fixed: true},
	"Courier-Oblique":       {Ascent: 629, Descent: 157, AvgWidth: 600, Fixed: true},
}

// metricsFor returns the metrics for a face name, falling back to the
// default face for unknown names.
func metricsFor(face string) faceMetrics {
	if m, ok := faceMetricsTable[face]; ok {
		return m
	}
	return faceMetricsTable[DefaultFace]
}

// advance returns the width of text in user space units for the given
// font, computed from the 1000-unit metrics table.
func (m faceMetrics) advance(text string, size float64) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * m.AvgWidth * size / 1000.0
}
