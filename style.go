package quill

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

func (c LineCap) valid() bool {
	return c >= LineCapButt && c <= LineCapSquare
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

func (j LineJoin) valid() bool {
	return j >= LineJoinMiter && j <= LineJoinBevel
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// DrawMode selects how DrawPath paints the current path.
type DrawMode int

const (
	// ModeStroke strokes the path outline.
	ModeStroke DrawMode = iota
	// ModeFill fills the path using the non-zero winding rule.
	ModeFill
	// ModeEOFFill fills the path using the even-odd rule.
	ModeEOFFill
	// ModeFillStroke fills (non-zero) and then strokes the path.
	ModeFillStroke
	// ModeEOFFillStroke fills (even-odd) and then strokes the path.
	ModeEOFFillStroke
)

// params expands a draw mode into the flags handed to the sink.
// ok is false for unrecognized modes.
func (m DrawMode) params() (stroke, fill bool, rule FillRule, ok bool) {
	switch m {
	case ModeStroke:
		return true, false, FillRuleNonZero, true
	case ModeFill:
		return false, true, FillRuleNonZero, true
	case ModeEOFFill:
		return false, true, FillRuleEvenOdd, true
	case ModeFillStroke:
		return true, true, FillRuleNonZero, true
	case ModeEOFFillStroke:
		return true, true, FillRuleEvenOdd, true
	}
	return false, false, FillRuleNonZero, false
}
