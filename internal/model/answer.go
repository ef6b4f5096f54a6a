package model

import "encoding/json"

// Answer holds one applicant's answer to one question. At most one row may
// exist per (application, question) pair; "unanswered" is represented by
// the absence of a row, never by an empty payload.
// swagger:model Answer
type Answer struct {
	BaseModel
	ApplicationID uint            `gorm:"index;uniqueIndex:idx_application_question" json:"applicationId"`
	QuestionID    uint            `gorm:"uniqueIndex:idx_application_question" json:"questionId"`
	AnswerType    QuestionType    `gorm:"size:20;not null" json:"answer_type"`
	AnswerData    json.RawMessage `gorm:"type:json" json:"answer_data"` // string, option id, or option id list depending on type
}

func (Answer) TableName() string {
	return "answers"
}
