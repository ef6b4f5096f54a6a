package reconcile

import (
	"chaos_backend/internal/model"
	"encoding/json"
	"fmt"
	"strings"
)

// NoAnswerOption is the reserved "nothing selected" option id for choice
// widgets. Real option ids are database keys and start at 1.
const NoAnswerOption uint = 0

// Value is an answer payload tagged by its question type, so each variant
// carries its natural shape instead of a runtime-inspected any.
type Value struct {
	Kind      model.QuestionType
	Text      string // ShortAnswer
	OptionID  uint   // DropDown, MultiChoice
	OptionIDs []uint // MultiSelect (unordered), Ranking (ordered)
}

func TextValue(text string) Value {
	return Value{Kind: model.ShortAnswer, Text: text}
}

func OptionValue(kind model.QuestionType, optionID uint) Value {
	return Value{Kind: kind, OptionID: optionID}
}

func OptionsValue(kind model.QuestionType, optionIDs []uint) Value {
	return Value{Kind: kind, OptionIDs: optionIDs}
}

// IsEmpty applies the per-type emptiness rules that decide whether a
// submission means "delete the persisted answer". Ranking is never
// implicitly empty: any ordering of a non-empty option list is an answer.
func (v Value) IsEmpty(optionCount int) bool {
	switch v.Kind {
	case model.ShortAnswer:
		return strings.TrimSpace(v.Text) == ""
	case model.DropDown, model.MultiChoice:
		return v.OptionID == NoAnswerOption
	case model.MultiSelect:
		return len(v.OptionIDs) == 0
	case model.Ranking:
		return optionCount == 0
	}
	return true
}

// MarshalData encodes the wire payload: a string, a single option id, or a
// list of option ids.
func (v Value) MarshalData() (json.RawMessage, error) {
	switch v.Kind {
	case model.ShortAnswer:
		return json.Marshal(v.Text)
	case model.DropDown, model.MultiChoice:
		return json.Marshal(v.OptionID)
	case model.MultiSelect, model.Ranking:
		ids := v.OptionIDs
		if ids == nil {
			ids = []uint{}
		}
		return json.Marshal(ids)
	}
	return nil, fmt.Errorf("unknown question type %q", v.Kind)
}

// DecodeValue parses a persisted answer payload back into a tagged Value.
func DecodeValue(kind model.QuestionType, data json.RawMessage) (Value, error) {
	v := Value{Kind: kind}
	switch kind {
	case model.ShortAnswer:
		if err := json.Unmarshal(data, &v.Text); err != nil {
			return Value{}, err
		}
	case model.DropDown, model.MultiChoice:
		if err := json.Unmarshal(data, &v.OptionID); err != nil {
			return Value{}, err
		}
	case model.MultiSelect, model.Ranking:
		if err := json.Unmarshal(data, &v.OptionIDs); err != nil {
			return Value{}, err
		}
	default:
		return Value{}, fmt.Errorf("unknown question type %q", kind)
	}
	return v, nil
}
