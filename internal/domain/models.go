package domain

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// ReadingCard is one card the querent drew, as reported by the client.
type ReadingCard struct {
	Name          string
	Reversed      bool
	PositionKey   string
	PositionLabel string
}

// Orientation returns the card's orientation as a display value.
func (c ReadingCard) Orientation() Orientation {
	if c.Reversed {
		return Reversed
	}
	return Upright
}

// SpreadType identifies the physical layout the cards were drawn in.
type SpreadType string

const (
	SpreadOneCard      SpreadType = "one_card"
	SpreadThreeCard    SpreadType = "three_card"
	SpreadRelationship SpreadType = "relationship"
	SpreadElements     SpreadType = "elements"
	SpreadMoon         SpreadType = "moon"
	SpreadCelticCross  SpreadType = "celtic_cross"
	SpreadShadow       SpreadType = "shadow"
	SpreadFreeform     SpreadType = "freeform"
)

// ReadingFocus selects the interpretive lens of the reading.
type ReadingFocus string

const (
	FocusPsychological ReadingFocus = "psychological"
	FocusMagical       ReadingFocus = "magical"
	FocusEnergetic     ReadingFocus = "energetic"
	FocusPragmatic     ReadingFocus = "pragmatic"
)

// Tone selects the voice the interpretation is written in.
type Tone string

const (
	ToneEmpathetic Tone = "empathetic"
	ToneRitual     Tone = "ritual"
	ToneCoaching   Tone = "coaching"
)

// Depth is the client's requested interpretive depth.
type Depth string

const (
	DepthShort  Depth = "short"
	DepthMedium Depth = "medium"
	DepthDeep   Depth = "deep"
)

// ReadingRequest is a validated, normalized reading request. Construct it
// with Normalize; downstream components rely on its invariants (1..10 cards,
// non-blank question, enum fields always within their allowed sets).
type ReadingRequest struct {
	Cards        []ReadingCard
	Question     string
	Context      string
	SpreadType   SpreadType
	ReadingFocus ReadingFocus
	Tone         Tone
	Depth        Depth
	ExplicitTier string
	Jumpers      []string
}

// Limits applied during normalization.
const (
	MaxCards   = 10
	MaxJumpers = 6
)
