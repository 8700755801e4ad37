package model

import "time"

// QuestionModel mirrors the 'questions' table. The three questionnaire
// catalogs (general, meal, sleep) share the table and are told apart by the
// family column.
type QuestionModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Family     string `gorm:"type:varchar(10);not null;index"`
	Prompt     string `gorm:"type:varchar(255);not null"`
	Category   string `gorm:"type:varchar(10);not null"`
	AnswerKind string `gorm:"type:varchar(10);not null"`
	Choice1    string `gorm:"type:varchar(50)"`
	Choice2    string `gorm:"type:varchar(50)"`
	Choice3    string `gorm:"type:varchar(50)"`
	Choice4    string `gorm:"type:varchar(50)"`
	IsRequired bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (QuestionModel) TableName() string {
	return "questions"
}

// VegetableModel mirrors the 'vegetables' lookup table.
type VegetableModel struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"type:varchar(255);unique;not null"`
	Color   string `gorm:"type:varchar(255)"`
	Variety string `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (VegetableModel) TableName() string {
	return "vegetables"
}
