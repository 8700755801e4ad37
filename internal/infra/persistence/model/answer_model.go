package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerModel mirrors the 'answers' table. The unique index over
// (user_id, question_id, answered_on) is the daily-uniqueness guard: it holds
// under concurrent submissions without any application-level pre-check.
type AnswerModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_answers_user_question_day"`
	Family        string    `gorm:"type:varchar(10);not null;index"`
	QuestionID    *uint     `gorm:"uniqueIndex:uniq_answers_user_question_day"`
	VegetableID   *uint
	AnswerKind    string  `gorm:"column:answer_type;type:varchar(10);not null"`
	AnswerChoice  *string `gorm:"type:varchar(50)"`
	AnswerInt     *int64
	AnswerBool    *bool
	IsAllergy     bool   `gorm:"not null;default:false"`
	IsUnnecessary bool   `gorm:"not null;default:false"`
	AnsweredOn    string `gorm:"type:date;not null;uniqueIndex:uniq_answers_user_question_day"`
	CreatedAt     time.Time

	Question *QuestionModel `gorm:"foreignKey:QuestionID"`
}

// TableName explicitly sets the table name for GORM.
func (AnswerModel) TableName() string {
	return "answers"
}
