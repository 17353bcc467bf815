package assessment

import "ares-site-service/internal/domain"

// DefaultCatalogID names the built-in governance questionnaire.
const DefaultCatalogID = "ai-governance"

// DefaultCatalog returns the built-in ten-question governance maturity
// questionnaire. It is used directly when no backing store is configured
// and as seed content for database-backed catalogs.
func DefaultCatalog() domain.Catalog {
	return domain.Catalog{
		ID: DefaultCatalogID,
		Questions: []domain.Question{
			{
				ID:       "q1",
				Category: "Data Governance",
				Prompt:   "Does your organization have documented policies for AI data collection and usage?",
				Options: []domain.Option{
					{Value: "comprehensive", Label: "Yes, comprehensive documented policies", Score: 10},
					{Value: "basic", Label: "Yes, but basic or incomplete", Score: 5},
					{Value: "informal", Label: "Informal policies only", Score: 2},
					{Value: "none", Label: "No formal policies", Score: 0},
				},
			},
			{
				ID:       "q2",
				Category: "Data Governance",
				Prompt:   "How do you handle sensitive data (PII, PHI, financial) in your AI systems?",
				Options: []domain.Option{
					{Value: "encrypted", Label: "Encrypted with access controls and audit trails", Score: 10},
					{Value: "protected", Label: "Basic protection measures in place", Score: 6},
					{Value: "minimal", Label: "Minimal protection", Score: 3},
					{Value: "unprotected", Label: "No specific protection measures", Score: 0},
				},
			},
			{
				ID:       "q3",
				Category: "Regulatory Compliance",
				Prompt:   "Which regulations apply to your AI systems?",
				Options: []domain.Option{
					{Value: "multiple", Label: "Multiple regulations (GDPR, HIPAA, EU AI Act, etc.)", Score: 10},
					{Value: "some", Label: "Some specific regulations", Score: 7},
					{Value: "general", Label: "General data protection laws only", Score: 4},
					{Value: "unsure", Label: "Unsure which regulations apply", Score: 0},
				},
			},
			{
				ID:       "q4",
				Category: "Regulatory Compliance",
				Prompt:   "Do you conduct regular compliance audits for your AI systems?",
				Options: []domain.Option{
					{Value: "quarterly", Label: "Yes, quarterly or more frequently", Score: 10},
					{Value: "annual", Label: "Yes, annually", Score: 6},
					{Value: "adhoc", Label: "Only when issues arise", Score: 3},
					{Value: "never", Label: "No regular audits", Score: 0},
				},
			},
			{
				ID:       "q5",
				Category: "AI Ethics & Bias",
				Prompt:   "How do you test for bias in your AI models?",
				Options: []domain.Option{
					{Value: "comprehensive", Label: "Comprehensive bias testing with diverse datasets", Score: 10},
					{Value: "basic", Label: "Basic bias testing", Score: 6},
					{Value: "manual", Label: "Manual review only", Score: 3},
					{Value: "none", Label: "No bias testing", Score: 0},
				},
			},
			{
				ID:       "q6",
				Category: "AI Ethics & Bias",
				Prompt:   "Do you have processes to ensure AI fairness across different demographic groups?",
				Options: []domain.Option{
					{Value: "documented", Label: "Yes, documented and regularly reviewed", Score: 10},
					{Value: "informal", Label: "Informal processes in place", Score: 5},
					{Value: "awareness", Label: "Aware but no formal processes", Score: 2},
					{Value: "none", Label: "No fairness processes", Score: 0},
				},
			},
			{
				ID:       "q7",
				Category: "Transparency & Explainability",
				Prompt:   "Can you explain how your AI models make decisions?",
				Options: []domain.Option{
					{Value: "full", Label: "Yes, full explainability with documentation", Score: 10},
					{Value: "partial", Label: "Partial explainability", Score: 6},
					{Value: "limited", Label: "Limited understanding", Score: 3},
					{Value: "blackbox", Label: "Black box models with no explainability", Score: 0},
				},
			},
			{
				ID:       "q8",
				Category: "Transparency & Explainability",
				Prompt:   "Do you disclose to users when they are interacting with AI systems?",
				Options: []domain.Option{
					{Value: "always", Label: "Always, with clear disclosure", Score: 10},
					{Value: "sometimes", Label: "Sometimes", Score: 5},
					{Value: "rarely", Label: "Rarely", Score: 2},
					{Value: "never", Label: "Never", Score: 0},
				},
			},
			{
				ID:       "q9",
				Category: "Risk Management",
				Prompt:   "Have you conducted a risk assessment for your AI systems?",
				Options: []domain.Option{
					{Value: "comprehensive", Label: "Yes, comprehensive risk assessment", Score: 10},
					{Value: "basic", Label: "Basic risk assessment", Score: 6},
					{Value: "informal", Label: "Informal risk review", Score: 3},
					{Value: "none", Label: "No risk assessment", Score: 0},
				},
			},
			{
				ID:       "q10",
				Category: "Risk Management",
				Prompt:   "Do you have incident response procedures for AI system failures or issues?",
				Options: []domain.Option{
					{Value: "documented", Label: "Yes, documented and tested procedures", Score: 10},
					{Value: "basic", Label: "Basic procedures in place", Score: 6},
					{Value: "informal", Label: "Informal response approach", Score: 3},
					{Value: "none", Label: "No incident response procedures", Score: 0},
				},
			},
		},
	}
}
