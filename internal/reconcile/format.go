package reconcile

import (
	"chaos_backend/internal/model"
	"strings"
)

// NoAnswerText is what review summaries show for an unanswered question.
const NoAnswerText = "No answer provided"

// FormatAnswer renders a human-readable string for review display. Option
// ids are resolved to their labels; multi-value answers are joined with a
// comma. Pure, no I/O.
func FormatAnswer(question *model.Question, value *Value) string {
	if value == nil || value.IsEmpty(len(question.Options)) {
		return NoAnswerText
	}

	switch value.Kind {
	case model.ShortAnswer:
		return value.Text
	case model.DropDown, model.MultiChoice:
		if label, ok := optionLabel(question, value.OptionID); ok {
			return label
		}
	case model.MultiSelect, model.Ranking:
		labels := make([]string, 0, len(value.OptionIDs))
		for _, id := range value.OptionIDs {
			if label, ok := optionLabel(question, id); ok {
				labels = append(labels, label)
			}
		}
		if len(labels) > 0 {
			return strings.Join(labels, ", ")
		}
	}
	return NoAnswerText
}

func optionLabel(question *model.Question, optionID uint) (string, bool) {
	for _, opt := range question.Options {
		if opt.ID == optionID {
			return opt.Text, true
		}
	}
	return "", false
}
