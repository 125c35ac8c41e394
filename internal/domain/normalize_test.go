package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func rawCards(names ...string) []RawCard {
	out := make([]RawCard, len(names))
	for i, n := range names {
		out[i] = RawCard{Name: n}
	}
	return out
}

func TestNormalize_MissingCards(t *testing.T) {
	_, err := Normalize(RawReading{Question: "What now?"})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", ve.Violations)
	}
}

func TestNormalize_BlankQuestion(t *testing.T) {
	_, err := Normalize(RawReading{Cards: rawCards("The Star"), Question: "   "})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNormalize_CollectsAllViolations(t *testing.T) {
	_, err := Normalize(RawReading{})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected both violations reported, got %v", ve.Violations)
	}
}

func TestNormalize_PlainCardLifted(t *testing.T) {
	req, err := Normalize(RawReading{Cards: rawCards("The Star", "The Fool"), Question: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := req.Cards[1]
	if c.Name != "The Fool" || c.Reversed || c.PositionKey != "p2" {
		t.Errorf("unexpected lifted card: %+v", c)
	}
}

func TestNormalize_StructuredCardKept(t *testing.T) {
	req, err := Normalize(RawReading{
		Cards: []RawCard{
			{Name: "The Tower", Reversed: true, PositionKey: "crown", PositionLabel: "Crown"},
		},
		Question: "q",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := req.Cards[0]
	if !c.Reversed || c.PositionKey != "crown" || c.PositionLabel != "Crown" {
		t.Errorf("unexpected card: %+v", c)
	}
}

func TestNormalize_TruncatesToTenCards(t *testing.T) {
	names := make([]string, 14)
	for i := range names {
		names[i] = "Card"
	}
	req, err := Normalize(RawReading{Cards: rawCards(names...), Question: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Cards) != MaxCards {
		t.Errorf("expected %d cards, got %d", MaxCards, len(req.Cards))
	}
}

func TestNormalize_EnumFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  RawReading
		want ReadingRequest
	}{
		{
			name: "unrecognized values coerced",
			raw: RawReading{
				Cards: rawCards("The Sun"), Question: "q",
				SpreadType: "pentagram", ReadingFocus: "astral", Tone: "stern", Depth: "infinite",
			},
			want: ReadingRequest{
				SpreadType: SpreadFreeform, ReadingFocus: FocusPsychological,
				Tone: ToneEmpathetic, Depth: DepthMedium,
			},
		},
		{
			name: "mixed case accepted",
			raw: RawReading{
				Cards: rawCards("The Sun"), Question: "q",
				SpreadType: "Celtic_Cross", ReadingFocus: "MAGICAL", Tone: "Ritual", Depth: "Deep",
			},
			want: ReadingRequest{
				SpreadType: SpreadCelticCross, ReadingFocus: FocusMagical,
				Tone: ToneRitual, Depth: DepthDeep,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("enum mismatch must not reject: %v", err)
			}
			if req.SpreadType != tt.want.SpreadType {
				t.Errorf("spreadType = %s, want %s", req.SpreadType, tt.want.SpreadType)
			}
			if req.ReadingFocus != tt.want.ReadingFocus {
				t.Errorf("readingFocus = %s, want %s", req.ReadingFocus, tt.want.ReadingFocus)
			}
			if req.Tone != tt.want.Tone {
				t.Errorf("tone = %s, want %s", req.Tone, tt.want.Tone)
			}
			if req.Depth != tt.want.Depth {
				t.Errorf("depth = %s, want %s", req.Depth, tt.want.Depth)
			}
		})
	}
}

func TestNormalize_JumpersCappedAndTrimmed(t *testing.T) {
	req, err := Normalize(RawReading{
		Cards:    rawCards("The Star"),
		Question: "q",
		Jumpers:  []string{" The Moon ", "", "Justice", "Strength", "The Hermit", "Death", "The Devil", "The World"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Jumpers) != MaxJumpers {
		t.Fatalf("expected %d jumpers, got %d", MaxJumpers, len(req.Jumpers))
	}
	if req.Jumpers[0] != "The Moon" {
		t.Errorf("jumper not trimmed: %q", req.Jumpers[0])
	}
}

func TestRawCard_UnmarshalStringOrObject(t *testing.T) {
	var raw RawReading
	payload := `{"cards":["The Star",{"name":"The Moon","reversed":true}],"question":"q"}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if raw.Cards[0].Name != "The Star" || raw.Cards[0].Reversed {
		t.Errorf("string card: %+v", raw.Cards[0])
	}
	if raw.Cards[1].Name != "The Moon" || !raw.Cards[1].Reversed {
		t.Errorf("object card: %+v", raw.Cards[1])
	}
}

func TestNormalize_QuestionTrimmed(t *testing.T) {
	req, err := Normalize(RawReading{Cards: rawCards("The Star"), Question: "  What next?  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(req.Question, " ") || strings.HasSuffix(req.Question, " ") {
		t.Errorf("question not trimmed: %q", req.Question)
	}
}
