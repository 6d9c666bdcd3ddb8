package document

// Rect is a crop region in source pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Size is an image geometry in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SaveStatus reports the outcome of Document.Save.
type SaveStatus struct {
	OutputPath string
	// BeforeSize is the source file size; nil for in-memory documents.
	BeforeSize *int64
	// AfterSize is the written file size.
	AfterSize *int64
}

// Ratio returns AfterSize/BeforeSize, or false when either is unknown.
func (s SaveStatus) Ratio() (float64, bool) {
	if s.BeforeSize == nil || s.AfterSize == nil || *s.BeforeSize == 0 {
		return 0, false
	}
	return float64(*s.AfterSize) / float64(*s.BeforeSize), true
}
