package assessment

import (
	"encoding/json"
	"fmt"
	"time"

	"ares-site-service/internal/domain"
)

// Flow walks a user linearly through a question catalog, one answer per
// step, and computes the result once at completion. Invalid transitions
// are guarded no-ops rather than errors; the only way to leave the
// Completed state is Restart.
type Flow struct {
	questions []domain.Question
	answers   domain.AnswerSet
	step      int
	result    *domain.AssessmentResult
	now       func() time.Time
}

// NewFlow starts a fresh assessment over the given questions.
func NewFlow(questions []domain.Question) *Flow {
	return &Flow{
		questions: questions,
		answers:   make(domain.AnswerSet),
		now:       time.Now,
	}
}

// NewFlowWithClock is test-only for deterministic export timestamps.
func NewFlowWithClock(questions []domain.Question, now func() time.Time) *Flow {
	f := NewFlow(questions)
	f.now = now
	return f
}

// Step reports the current zero-based question index.
func (f *Flow) Step() int { return f.step }

// Completed reports whether the flow has produced a result.
func (f *Flow) Completed() bool { return f.result != nil }

// Result returns the computed result once the flow is complete.
func (f *Flow) Result() (domain.AssessmentResult, bool) {
	if f.result == nil {
		return domain.AssessmentResult{}, false
	}
	return *f.result, true
}

// Current returns the question at the current step.
func (f *Flow) Current() (domain.Question, bool) {
	if f.result != nil || f.step >= len(f.questions) {
		return domain.Question{}, false
	}
	return f.questions[f.step], true
}

// Answer records or overwrites the selection for a question. Ignored once
// the flow is complete.
func (f *Flow) Answer(questionID, optionValue string) {
	if f.result != nil {
		return
	}
	f.answers[questionID] = optionValue
}

// CanAdvance reports whether the current question has a recorded answer.
func (f *Flow) CanAdvance() bool {
	if f.result != nil || f.step >= len(f.questions) {
		return false
	}
	_, ok := f.answers[f.questions[f.step].ID]
	return ok
}

// Advance moves to the next question, or computes the result when the
// current step is the last one. No-op unless the current question is
// answered.
func (f *Flow) Advance() {
	if !f.CanAdvance() {
		return
	}
	if f.step == len(f.questions)-1 {
		result := Score(f.answers, f.questions)
		f.result = &result
		return
	}
	f.step++
}

// Retreat steps back one question; no-op at the first step or after
// completion.
func (f *Flow) Retreat() {
	if f.result != nil || f.step == 0 {
		return
	}
	f.step--
}

// Restart discards all answers and any result, returning to the first
// question. Valid from any state.
func (f *Flow) Restart() {
	f.answers = make(domain.AnswerSet)
	f.step = 0
	f.result = nil
}

// ExportDocument is the downloadable report produced after completion.
type ExportDocument struct {
	AssessmentDate  string                          `json:"assessmentDate"`
	OverallScore    string                          `json:"overallScore"`
	ComplianceLevel domain.MaturityLevel            `json:"complianceLevel"`
	CategoryScores  map[string]domain.CategoryScore `json:"categoryScores"`
	Recommendations []string                        `json:"recommendations"`
	Answers         []ExportAnswer                  `json:"answers"`
}

// ExportAnswer pairs a question with the human-readable label the user chose.
type ExportAnswer struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Export serializes the result plus answer labels as a JSON document.
// Only valid once the flow is complete.
func (f *Flow) Export() ([]byte, error) {
	if f.result == nil {
		return nil, fmt.Errorf("assessment not complete")
	}

	doc := ExportDocument{
		AssessmentDate:  f.now().UTC().Format(time.RFC3339),
		OverallScore:    fmt.Sprintf("%d%%", f.result.Percentage),
		ComplianceLevel: f.result.Level,
		CategoryScores:  f.result.CategoryScores,
		Recommendations: f.result.Recommendations,
	}
	for _, q := range f.questions {
		label := "Not answered"
		if value, ok := f.answers[q.ID]; ok {
			if opt, found := findOption(q, value); found {
				label = opt.Label
			}
		}
		doc.Answers = append(doc.Answers, ExportAnswer{
			Category: q.Category,
			Question: q.Prompt,
			Answer:   label,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
