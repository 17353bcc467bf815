package domain

import "time"

// Option is one selectable answer for an assessment question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"` // weight in [0,10]
}

// Question models a single assessment step grouped under a category.
type Question struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
}

// Catalog is the ordered question set for one assessment.
type Catalog struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// MaxOptionScore is the weight ceiling per question; every question
// contributes exactly this much to the maximum score.
const MaxOptionScore = 10

// AnswerSet maps question ID to the selected option value.
type AnswerSet map[string]string

// MaturityLevel is one of four ordered qualitative bands.
type MaturityLevel string

const (
	LevelCritical         MaturityLevel = "critical"
	LevelNeedsImprovement MaturityLevel = "needs-improvement"
	LevelGood             MaturityLevel = "good"
	LevelExcellent        MaturityLevel = "excellent"
)

// Rank orders levels from worst (0) to best (3).
func (l MaturityLevel) Rank() int {
	switch l {
	case LevelCritical:
		return 0
	case LevelNeedsImprovement:
		return 1
	case LevelGood:
		return 2
	case LevelExcellent:
		return 3
	}
	return -1
}

// CategoryScore is the per-category subtotal of an assessment.
type CategoryScore struct {
	Score      int `json:"score"`
	MaxScore   int `json:"maxScore"`
	Percentage int `json:"percentage"`
}

// AssessmentResult is the immutable outcome of a completed assessment.
type AssessmentResult struct {
	Score           int                      `json:"score"`
	MaxScore        int                      `json:"maxScore"`
	Percentage      int                      `json:"percentage"`
	Level           MaturityLevel            `json:"level"`
	Recommendations []string                 `json:"recommendations"`
	CategoryScores  map[string]CategoryScore `json:"categoryScores"`
}

// Sender identifies which side of the chat wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one transcript entry. Messages are append-only; the
// client never updates or deletes them.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    Sender    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadKind distinguishes the capture forms that feed the relay.
type LeadKind string

const (
	LeadContact     LeadKind = "contact"
	LeadAppointment LeadKind = "appointment"
	LeadNewsletter  LeadKind = "newsletter"
)

// Lead is a flat key/value lead record; only Name and Email are
// mandatory, empty optional fields are omitted downstream.
type Lead struct {
	Kind          LeadKind `json:"kind"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Company       string   `json:"company,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Service       string   `json:"service,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Message       string   `json:"message,omitempty"`
	Date          string   `json:"date,omitempty"` // yyyy-mm-dd
	PreferredTime string   `json:"preferredTime,omitempty"`
}
