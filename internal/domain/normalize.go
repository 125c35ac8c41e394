package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawReading is the untrusted inbound payload before normalization.
type RawReading struct {
	Cards        []RawCard `json:"cards"`
	Question     string    `json:"question"`
	Context      string    `json:"context"`
	SpreadType   string    `json:"spreadType"`
	ReadingFocus string    `json:"readingFocus"`
	Tone         string    `json:"tone"`
	Depth        string    `json:"depth"`
	Tier         string    `json:"tier"`
	Jumpers      []string  `json:"jumpers"`
}

// RawCard accepts either a bare card name or a structured card object.
type RawCard struct {
	Name          string `json:"name"`
	Reversed      bool   `json:"reversed"`
	PositionKey   string `json:"positionKey"`
	PositionLabel string `json:"positionLabel"`
}

func (c *RawCard) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c = RawCard{Name: name}
		return nil
	}
	type plain RawCard
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = RawCard(p)
	return nil
}

var (
	spreadTypes = map[SpreadType]bool{
		SpreadOneCard: true, SpreadThreeCard: true, SpreadRelationship: true,
		SpreadElements: true, SpreadMoon: true, SpreadCelticCross: true,
		SpreadShadow: true, SpreadFreeform: true,
	}
	readingFocuses = map[ReadingFocus]bool{
		FocusPsychological: true, FocusMagical: true, FocusEnergetic: true, FocusPragmatic: true,
	}
	tones = map[Tone]bool{
		ToneEmpathetic: true, ToneRitual: true, ToneCoaching: true,
	}
	depths = map[Depth]bool{
		DepthShort: true, DepthMedium: true, DepthDeep: true,
	}
)

// normalizeEnum lowercases raw and checks it against allowed; anything
// unrecognized (including empty) collapses to fallback. Total by contract:
// enum mismatch never rejects a request.
func normalizeEnum[T ~string](raw string, allowed map[T]bool, fallback T) T {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	if allowed[v] {
		return v
	}
	return fallback
}

// Normalize validates raw and produces the canonical ReadingRequest used by
// every downstream component. It fails only on missing cards or a blank
// question; all enum-like fields fall back to their defaults instead. The
// returned *ValidationError lists every violation found.
func Normalize(raw RawReading) (ReadingRequest, error) {
	var violations []string

	question := strings.TrimSpace(raw.Question)
	if question == "" {
		violations = append(violations, "question is required")
	}

	cards := make([]ReadingCard, 0, len(raw.Cards))
	for i, rc := range raw.Cards {
		if len(cards) == MaxCards {
			break // excess cards are ignored, not an error
		}
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			continue
		}
		key := strings.TrimSpace(rc.PositionKey)
		if key == "" {
			key = fmt.Sprintf("p%d", i+1)
		}
		cards = append(cards, ReadingCard{
			Name:          name,
			Reversed:      rc.Reversed,
			PositionKey:   key,
			PositionLabel: strings.TrimSpace(rc.PositionLabel),
		})
	}
	if len(cards) == 0 {
		violations = append(violations, "at least one card is required")
	}

	if len(violations) > 0 {
		return ReadingRequest{}, &ValidationError{Violations: violations}
	}

	var jumpers []string
	for _, j := range raw.Jumpers {
		if len(jumpers) == MaxJumpers {
			break
		}
		if j = strings.TrimSpace(j); j != "" {
			jumpers = append(jumpers, j)
		}
	}

	return ReadingRequest{
		Cards:        cards,
		Question:     question,
		Context:      strings.TrimSpace(raw.Context),
		SpreadType:   normalizeEnum(raw.SpreadType, spreadTypes, SpreadFreeform),
		ReadingFocus: normalizeEnum(raw.ReadingFocus, readingFocuses, FocusPsychological),
		Tone:         normalizeEnum(raw.Tone, tones, ToneEmpathetic),
		Depth:        normalizeEnum(raw.Depth, depths, DepthMedium),
		ExplicitTier: strings.ToLower(strings.TrimSpace(raw.Tier)),
		Jumpers:      jumpers,
	}, nil
}
