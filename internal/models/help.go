package models

import "time"

// FAQ is a help-centre question and answer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RecordID implements triage.Record using the question text.
func (f *FAQ) RecordID() string { return f.Question }

func (f *FAQ) FilterValues() map[string]string { return nil }

func (f *FAQ) SearchFields() []string {
	return []string{f.Question, f.Answer}
}

// SupportRequest is a message submitted through the help centre.
type SupportRequest struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
