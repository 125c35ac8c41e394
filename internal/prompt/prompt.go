// Package prompt renders the system and user blocks sent to the provider.
// The output contract is fixed across tiers: a short summary, three key
// interpretations, and three practical action steps, with no fatalistic or
// diagnostic language. Tiers only vary the voice and the length budget.
package prompt

import (
	"fmt"
	"strings"

	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
)

// Style is the per-tier prompt parameterization.
type Style struct {
	Voice    string
	MaxWords int
}

var styles = map[domain.Tier]Style{
	domain.TierLite: {
		Voice:    "You are the Aqua Astrae Oraculum, a concise tarot reader. Keep the reading grounded and direct.",
		MaxWords: 180,
	},
	domain.TierMedium: {
		Voice:    "You are the Aqua Astrae Oraculum, a thoughtful tarot reader. Weave the cards into a coherent narrative around the question.",
		MaxWords: 320,
	},
	domain.TierDeep: {
		Voice:    "You are the Aqua Astrae Oraculum, a contemplative tarot reader. Explore the symbolism of each position and how the cards speak to one another.",
		MaxWords: 480,
	},
}

// StyleFor returns the prompt style for a tier.
func StyleFor(tier domain.Tier) Style {
	if s, ok := styles[tier]; ok {
		return s
	}
	return styles[domain.TierLite]
}

var focusInstructions = map[domain.ReadingFocus]string{
	domain.FocusPsychological: "Read the cards through a psychological lens: inner patterns, motivations, and growth.",
	domain.FocusMagical:       "Read the cards through a magical lens: symbols, archetypes, and ritual resonance.",
	domain.FocusEnergetic:     "Read the cards through an energetic lens: flows, blockages, and balance.",
	domain.FocusPragmatic:     "Read the cards through a pragmatic lens: concrete situations and workable choices.",
}

var toneInstructions = map[domain.Tone]string{
	domain.ToneEmpathetic: "Write warmly and empathetically, as to a trusted friend.",
	domain.ToneRitual:     "Write in a calm, ceremonial register, as if spoken during a ritual.",
	domain.ToneCoaching:   "Write like a supportive coach: encouraging, focused on agency and next steps.",
}

// Build renders the prompt for a normalized request at the given tier.
// lore may be nil; when provided, recognized cards get a keyword note
// appended to the user block.
func Build(req domain.ReadingRequest, tier domain.Tier, lore ports.LoreStore) ports.Prompt {
	style := StyleFor(tier)

	var sys strings.Builder
	sys.WriteString(style.Voice)
	sys.WriteString("\n\nRules:\n")
	sys.WriteString("- Never make fatalistic or deterministic claims; the cards show tendencies, not fixed outcomes.\n")
	sys.WriteString("- Never diagnose health conditions and never give medical or legal advice.\n")
	fmt.Fprintf(&sys, "- %s\n", focusInstructions[req.ReadingFocus])
	fmt.Fprintf(&sys, "- %s\n", toneInstructions[req.Tone])
	sys.WriteString("\nStructure the answer in exactly three parts:\n")
	sys.WriteString("1) A short summary.\n")
	sys.WriteString("2) Three key interpretations.\n")
	sys.WriteString("3) Three practical action steps.\n")
	fmt.Fprintf(&sys, "\nKeep the whole answer under %d words.", style.MaxWords)

	var usr strings.Builder
	fmt.Fprintf(&usr, "Question: %s\n", req.Question)
	if req.Context != "" {
		fmt.Fprintf(&usr, "Context: %s\n", req.Context)
	}
	fmt.Fprintf(&usr, "Spread: %s\n", req.SpreadType)
	fmt.Fprintf(&usr, "Cards: %s\n", renderCards(req))

	if notes := renderLore(req.Cards, lore); notes != "" {
		usr.WriteString(notes)
	}
	if len(req.Jumpers) > 0 {
		fmt.Fprintf(&usr, "Jumpers (cards that fell out while shuffling, for context only): %s\n", strings.Join(req.Jumpers, ", "))
	}

	return ports.Prompt{System: sys.String(), User: usr.String()}
}

// renderCards joins the drawn cards as "label-or-key: name (orientation)".
// The label falls back to the spread's canonical position meaning, then to
// the position key.
func renderCards(req domain.ReadingRequest) string {
	parts := make([]string, len(req.Cards))
	for i, c := range req.Cards {
		label := c.PositionLabel
		if label == "" {
			label = domain.PositionLabel(req.SpreadType, i)
		}
		if label == "" {
			label = c.PositionKey
		}
		parts[i] = fmt.Sprintf("%s: %s (%s)", label, c.Name, c.Orientation())
	}
	return strings.Join(parts, "; ")
}

func renderLore(cards []domain.ReadingCard, lore ports.LoreStore) string {
	if lore == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cards {
		if cl, ok := lore.Lookup(c.Name); ok && len(cl.Keywords) > 0 {
			fmt.Fprintf(&b, "Note on %s: %s.\n", c.Name, strings.Join(cl.Keywords, ", "))
		}
	}
	return b.String()
}
