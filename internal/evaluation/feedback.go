package evaluation

import (
	"fmt"
	"math"
	"strings"
)

// Thresholds below which a feedback hint is added.
const (
	depthHintBelow    = 0.6
	clarityHintBelow  = 0.3
	semanticHintBelow = 0.4
	minSentences      = 3
	maxSentences      = 12
)

type feedbackInput struct {
	context        Context
	classification Classification
	percentage     float64
	matched        []string
	missing        []string
	components     Components
	sentenceCount  int
}

func buildFeedback(in feedbackInput) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analysis for a %s-level %s at %s:\n\n",
		in.context.ExperienceLevel, in.context.Role, in.context.Company)
	fmt.Fprintf(&sb, "Your answer demonstrates a %s understanding.\n", strings.ToLower(string(in.classification)))
	fmt.Fprintf(&sb, "It covered ~%d%% of expected concepts.\n", int(math.Round(in.percentage)))

	if len(in.matched) > 0 {
		fmt.Fprintf(&sb, "Covered: %s.\n", strings.Join(in.matched, ", "))
	}
	if len(in.missing) > 0 {
		fmt.Fprintf(&sb, "Missing: %s.\n", strings.Join(in.missing, ", "))
	}
	if in.components.Depth < depthHintBelow {
		sb.WriteString("Add examples or deeper steps for more depth.\n")
	}
	if in.components.Clarity < clarityHintBelow {
		sb.WriteString("Use more varied vocabulary for clarity.\n")
	}
	if in.components.Semantic < semanticHintBelow {
		sb.WriteString("Add more role-specific technical terms.\n")
	}

	switch {
	case in.sentenceCount < minSentences:
		sb.WriteString("Structure as problem -> approach -> result.\n")
	case in.sentenceCount > maxSentences:
		sb.WriteString("Trim to keep it sharp and focused.\n")
	}

	return sb.String()
}
