package reconcile

import (
	"chaos_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func optionsQuestion(kind model.QuestionType, labels ...string) *model.Question {
	q := &model.Question{
		BaseModel: model.BaseModel{ID: 1},
		Type:      kind,
	}
	for i, label := range labels {
		q.Options = append(q.Options, model.QuestionOption{
			BaseModel: model.BaseModel{ID: uint(i + 1)},
			Text:      label,
			Order:     i,
		})
	}
	return q
}

func TestFormatAnswerShortAnswer(t *testing.T) {
	q := &model.Question{BaseModel: model.BaseModel{ID: 1}, Type: model.ShortAnswer}

	v := TextValue("Hello there")
	assert.Equal(t, "Hello there", FormatAnswer(q, &v))

	blank := TextValue("   ")
	assert.Equal(t, NoAnswerText, FormatAnswer(q, &blank))
	assert.Equal(t, NoAnswerText, FormatAnswer(q, nil))
}

func TestFormatAnswerSingleChoice(t *testing.T) {
	q := optionsQuestion(model.DropDown, "Yes", "No", "Maybe")

	v := OptionValue(model.DropDown, 2)
	assert.Equal(t, "No", FormatAnswer(q, &v))

	none := OptionValue(model.DropDown, NoAnswerOption)
	assert.Equal(t, NoAnswerText, FormatAnswer(q, &none))

	// An id that is not one of the question's options renders as unanswered.
	unknown := OptionValue(model.DropDown, 99)
	assert.Equal(t, NoAnswerText, FormatAnswer(q, &unknown))
}

func TestFormatAnswerMultiSelect(t *testing.T) {
	q := optionsQuestion(model.MultiSelect, "A", "B", "C")

	v := OptionsValue(model.MultiSelect, []uint{2, 3})
	assert.Equal(t, "B, C", FormatAnswer(q, &v))

	empty := OptionsValue(model.MultiSelect, nil)
	assert.Equal(t, NoAnswerText, FormatAnswer(q, &empty))

	// Unknown ids are skipped, not rendered.
	mixed := OptionsValue(model.MultiSelect, []uint{2, 99})
	assert.Equal(t, "B", FormatAnswer(q, &mixed))
}

func TestFormatAnswerRanking(t *testing.T) {
	q := optionsQuestion(model.Ranking, "First", "Second", "Third")

	v := OptionsValue(model.Ranking, []uint{3, 1, 2})
	assert.Equal(t, "Third, First, Second", FormatAnswer(q, &v))
}

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, TextValue("").IsEmpty(0))
	assert.True(t, TextValue(" \t ").IsEmpty(0))
	assert.False(t, TextValue("x").IsEmpty(0))

	assert.True(t, OptionValue(model.DropDown, NoAnswerOption).IsEmpty(3))
	assert.False(t, OptionValue(model.DropDown, 1).IsEmpty(3))
	assert.True(t, OptionValue(model.MultiChoice, NoAnswerOption).IsEmpty(3))

	assert.True(t, OptionsValue(model.MultiSelect, nil).IsEmpty(3))
	assert.False(t, OptionsValue(model.MultiSelect, []uint{1}).IsEmpty(3))

	// A ranking is only empty when the question has no options at all; any
	// ordering of a non-empty option list counts as an answer.
	assert.True(t, OptionsValue(model.Ranking, nil).IsEmpty(0))
	assert.False(t, OptionsValue(model.Ranking, nil).IsEmpty(3))
	assert.False(t, OptionsValue(model.Ranking, []uint{2, 1, 3}).IsEmpty(3))
}

func TestValueMarshalRoundTrip(t *testing.T) {
	cases := []Value{
		TextValue("Hello"),
		OptionValue(model.DropDown, 4),
		OptionValue(model.MultiChoice, 2),
		OptionsValue(model.MultiSelect, []uint{1, 3}),
		OptionsValue(model.Ranking, []uint{3, 2, 1}),
	}

	for _, want := range cases {
		data, err := want.MarshalData()
		assert.NoError(t, err)
		got, err := DecodeValue(want.Kind, data)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeValueRejectsMismatchedPayload(t *testing.T) {
	_, err := DecodeValue(model.DropDown, []byte(`"not a number"`))
	assert.Error(t, err)

	_, err = DecodeValue(model.QuestionType("Unknown"), []byte(`1`))
	assert.Error(t, err)
}
