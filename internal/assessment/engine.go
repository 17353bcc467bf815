package assessment

import (
	"math"

	"ares-site-service/internal/domain"
)

// Score computes the weighted assessment result for a (possibly partial)
// answer set against the ordered question list. It is pure and total:
// an unknown or missing option value contributes zero instead of failing.
// Category maxima always accrue from the full question list, so partial
// completion never shifts a category's denominator.
func Score(answers domain.AnswerSet, questions []domain.Question) domain.AssessmentResult {
	total := 0
	maxScore := len(questions) * domain.MaxOptionScore
	categories := make(map[string]domain.CategoryScore)

	for _, q := range questions {
		cat := categories[q.Category]
		cat.MaxScore += domain.MaxOptionScore

		if value, ok := answers[q.ID]; ok {
			if opt, found := findOption(q, value); found {
				total += opt.Score
				cat.Score += opt.Score
			}
		}
		categories[q.Category] = cat
	}

	for name, cat := range categories {
		cat.Percentage = percentage(cat.Score, cat.MaxScore)
		categories[name] = cat
	}

	pct := percentage(total, maxScore)
	level := levelFor(pct)

	return domain.AssessmentResult{
		Score:           total,
		MaxScore:        maxScore,
		Percentage:      pct,
		Level:           level,
		Recommendations: recommendationsFor(level),
		CategoryScores:  categories,
	}
}

func findOption(q domain.Question, value string) (domain.Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return domain.Option{}, false
}

func percentage(score, max int) int {
	if max == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(max) * 100))
}

// levelFor maps a percentage to its maturity band. Boundaries are fixed,
// non-overlapping and cover [0,100].
func levelFor(pct int) domain.MaturityLevel {
	switch {
	case pct >= 80:
		return domain.LevelExcellent
	case pct >= 60:
		return domain.LevelGood
	case pct >= 40:
		return domain.LevelNeedsImprovement
	default:
		return domain.LevelCritical
	}
}

// recommendationsFor returns the static advisory copy for a band.
func recommendationsFor(level domain.MaturityLevel) []string {
	switch level {
	case domain.LevelExcellent:
		return []string{
			"Your AI governance practices are strong. Continue regular audits to maintain compliance.",
			"Consider obtaining formal certifications (ISO 42001, SOC 2) to validate your practices.",
			"Share your governance framework as a best practice within your industry.",
			"Implement continuous monitoring to stay ahead of emerging regulations.",
		}
	case domain.LevelGood:
		return []string{
			"Strengthen documentation for all AI governance policies and procedures.",
			"Implement regular bias testing and fairness assessments across all models.",
			"Develop comprehensive incident response procedures for AI system failures.",
			"Consider engaging with ARES for a detailed compliance audit and roadmap.",
		}
	case domain.LevelNeedsImprovement:
		return []string{
			"Urgently develop formal AI governance policies and data protection measures.",
			"Conduct a comprehensive risk assessment for all AI systems in production.",
			"Implement explainability mechanisms to understand AI decision-making.",
			"Engage with ARES for immediate compliance consulting and remediation planning.",
			"Establish regular audit schedules to track compliance improvements.",
		}
	default:
		return []string{
			"CRITICAL: Your organization faces significant regulatory and ethical risks.",
			"Immediately pause high-risk AI deployments until governance frameworks are established.",
			"Engage ARES for emergency compliance assessment and risk mitigation.",
			"Develop comprehensive data governance policies before processing sensitive information.",
			"Establish AI ethics committee and formal oversight processes.",
			"Consider third-party audit to identify all compliance gaps.",
		}
	}
}
