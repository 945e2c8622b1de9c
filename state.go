package quill

// ClipEntry records one clip operation. The effective clip region is the
// intersection of all entries in a state's clip list.
type ClipEntry struct {
	Path *Path
	Rule FillRule
}

// State is a value snapshot of the drawing state: everything SaveState
// captures and RestoreState brings back. Every attribute has a
// well-defined default so a freshly constructed context is immediately
// usable.
type State struct {
	// Transform is the current coordinate transform matrix.
	Transform Matrix

	// StrokeColor and FillColor are the painting colors.
	StrokeColor RGBA
	FillColor   RGBA

	// Stroke holds line width, cap, join, miter limit and dash pattern.
	Stroke Stroke

	// Clip is the list of clip operations applied so far; empty means
	// unclipped.
	Clip []ClipEntry

	// Font is the current text face and size.
	Font Font

	// TextX, TextY is the current text position.
	TextX, TextY float64
}

// defaultState returns the state of a freshly constructed context.
func defaultState() State {
	return State{
		Transform:   Identity(),
		StrokeColor: Black,
		FillColor:   Black,
		Stroke:      DefaultStroke(),
		Font:        Font{Face: DefaultFace, Size: 12},
	}
}

// clone returns a deep copy suitable for pushing onto the state stack.
func (s State) clone() State {
	result := s
	result.Stroke = s.Stroke.Clone()
	if len(s.Clip) > 0 {
		result.Clip = make([]ClipEntry, len(s.Clip))
		copy(result.Clip, s.Clip)
	}
	return result
}
