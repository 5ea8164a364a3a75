package domain

import (
	"encoding/json"
	"time"
)

// QuestionType identifies how a question is answered
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeCheckboxes     QuestionType = "checkboxes"
	QuestionTypeTextShort      QuestionType = "text_short"
	QuestionTypeTextLong       QuestionType = "text_long"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeDate           QuestionType = "date"
	QuestionTypeTime           QuestionType = "time"
	QuestionTypeDateTime       QuestionType = "datetime"
	QuestionTypeFileUpload     QuestionType = "file_upload"
	QuestionTypeMatrix         QuestionType = "matrix"
	QuestionTypeRanking        QuestionType = "ranking"
	QuestionTypeDemographic    QuestionType = "demographic"
)

// IsText reports whether answers to the question are free text
func (t QuestionType) IsText() bool {
	return t == QuestionTypeTextShort || t == QuestionTypeTextLong
}

// IsChoice reports whether answers pick from a fixed option list
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCheckboxes, QuestionTypeDemographic:
		return true
	}
	return false
}

// IsNumeric reports whether answers are numeric ratings
func (t QuestionType) IsNumeric() bool {
	return t == QuestionTypeRating || t == QuestionTypeScale
}

// QuestionDescriptor describes a single question of a questionnaire
type QuestionDescriptor struct {
	ID    string       `json:"id" validate:"required"`
	Type  QuestionType `json:"type" validate:"required,questiontype"`
	Title string       `json:"title"`
}

// Questionnaire is the ordered question list responses are collected against
type Questionnaire struct {
	ID        string               `json:"id"`
	Title     string               `json:"title,omitempty"`
	Questions []QuestionDescriptor `json:"questions" validate:"dive"`
}

// Lookup finds a question by id
func (q *Questionnaire) Lookup(id string) (QuestionDescriptor, bool) {
	if q == nil {
		return QuestionDescriptor{}, false
	}
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return QuestionDescriptor{}, false
}

// Answer is a respondent's answer to one question. Value holds whatever the
// collector stored: a scalar, a list or a keyed mapping.
type Answer struct {
	QuestionID   string       `json:"question_id" validate:"required"`
	QuestionType QuestionType `json:"question_type"`
	Value        interface{}  `json:"value"`
	AnsweredAt   *time.Time   `json:"answered_at,omitempty"`
}

// ResponseMetadata carries session, device and attribution details of a response
type ResponseMetadata struct {
	SessionID      string     `json:"session_id,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	ModifiedAt     *time.Time `json:"modified_at,omitempty"`
	CompletionTime float64    `json:"completion_time"` // seconds

	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	Browser    string `json:"browser,omitempty"`
	OS         string `json:"os,omitempty"`
	Language   string `json:"language,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Referrer   string `json:"referrer,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
}

// ResponseStatus represents the lifecycle state of a response
type ResponseStatus string

const (
	ResponseStatusCompleted  ResponseStatus = "completed"
	ResponseStatusInProgress ResponseStatus = "in_progress"
	ResponseStatusPartial    ResponseStatus = "partial"
	ResponseStatusAbandoned  ResponseStatus = "abandoned"
)

// Scoring holds the grading outcome of a quiz-style response
type Scoring struct {
	TotalScore float64 `json:"total_score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade,omitempty"`
	Passed     bool    `json:"passed"`
}

// Response is one respondent's submission
type Response struct {
	ID              string           `json:"id" validate:"required"`
	QuestionnaireID string           `json:"questionnaire_id,omitempty"`
	Answers         []Answer         `json:"answers" validate:"dive"`
	Metadata        ResponseMetadata `json:"metadata"`
	Status          ResponseStatus   `json:"status"`
	Scoring         *Scoring         `json:"scoring,omitempty"`

	// Raw is the record as it was decoded, including fields this type
	// does not model. Empty for responses built in code.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a response and keeps a copy of the source record
func (r *Response) UnmarshalJSON(data []byte) error {
	type plain Response
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Response(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Record returns the source record when one was decoded, otherwise the
// encoded response
func (r Response) Record() (json.RawMessage, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(r)
}

// IsCompleted reports whether the response was fully submitted
func (r Response) IsCompleted() bool {
	return r.Status == ResponseStatusCompleted
}

// AnswerValues returns the raw answer values in answer order
func (r Response) AnswerValues() []interface{} {
	values := make([]interface{}, 0, len(r.Answers))
	for _, a := range r.Answers {
		values = append(values, a.Value)
	}
	return values
}

// DateRange bounds responses by submission time. Nil ends are open.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsZero reports whether the range has no bounds
func (d DateRange) IsZero() bool {
	return d.From == nil && d.To == nil
}

// Contains reports whether t falls inside the range (inclusive)
func (d DateRange) Contains(t time.Time) bool {
	if d.From != nil && t.Before(*d.From) {
		return false
	}
	if d.To != nil && t.After(*d.To) {
		return false
	}
	return true
}
