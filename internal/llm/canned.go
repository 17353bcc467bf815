package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Canned is a keyword-matched responder used when no completion API is
// configured. Answers cover the support topics the site advertises.
type Canned struct{}

func NewCanned() *Canned {
	return &Canned{}
}

func (c *Canned) Generate(_ context.Context, messages []Message) (Response, error) {
	question := lastUserMessage(messages)
	return Response{Content: cannedReply(question), Model: "canned"}, nil
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func cannedReply(question string) string {
	q := strings.ToLower(question)
	switch {
	case containsWord(q, "hello", "hi", "hey"):
		return "Hello! I'm the ARES AI assistant. I can help you with:\n\n• AI Governance & Compliance\n• Risk Assessment & Management\n• Regulatory Compliance (EU AI Act, etc.)\n• Ethical AI Implementation\n• AI System Auditing\n\nHow can I assist you today?"
	case containsAny(q, "service", "what do you do"):
		return "ARES provides comprehensive AI governance services:\n\n1. AI Governance Consulting - Strategic guidance for responsible AI implementation\n2. Compliance Assessment - Evaluate your AI systems against regulatory requirements\n3. Risk Management - Identify and mitigate AI-related risks\n4. Ethical AI Framework - Build ethical guidelines for AI development\n5. Audit & Certification - Third-party auditing for AI systems\n\nWould you like to learn more about any specific service?"
	case containsAny(q, "compliance", "regulation"):
		return "ARES helps organizations navigate AI compliance:\n\n• EU AI Act Compliance - Ensure your AI systems meet EU requirements\n• Risk Classification - Determine your AI system's risk level\n• Documentation Support - Create required compliance documentation\n• Ongoing Monitoring - Continuous compliance tracking\n\nWe offer a free compliance assessment tool. Would you like to try it?"
	case containsAny(q, "price", "cost", "pricing"):
		return "Our pricing is customized based on your specific needs:\n\n• Compliance Assessment - Starting from $5,000\n• Full Governance Package - Custom pricing\n• Ongoing Support - Monthly retainer options\n\nI'd recommend scheduling a consultation to discuss your requirements. Would you like to book an appointment?"
	case containsAny(q, "appointment", "meeting", "schedule"):
		return "I'd be happy to help you schedule a consultation!\n\nYou can book an appointment through our website's 'Book Appointment' section. Our team typically responds within 24 hours.\n\nWould you like me to guide you to the appointment booking page?"
	case containsAny(q, "contact", "email", "phone"):
		return "You can reach ARES through:\n\n📧 Email: contact@ares-ai.com\n🌐 Website: Use our contact form for inquiries\n\nOur team typically responds within 24 hours. How else can I help you?"
	case containsAny(q, "risk", "assessment"):
		return "ARES offers comprehensive AI risk assessment services:\n\n• Risk Identification - Detect potential AI-related risks\n• Impact Analysis - Evaluate consequences of AI failures\n• Mitigation Strategies - Develop risk reduction plans\n• Continuous Monitoring - Ongoing risk tracking\n\nWould you like to learn more about our risk assessment process?"
	case containsAny(q, "ethical", "ethics"):
		return "Ethical AI is at the core of what we do:\n\n• Fairness & Bias Detection - Identify and mitigate algorithmic bias\n• Transparency - Make AI decision-making explainable\n• Accountability - Establish clear responsibility frameworks\n• Privacy Protection - Ensure data privacy compliance\n\nWould you like to discuss implementing ethical AI practices in your organization?"
	case strings.Contains(q, "audit"):
		return "ARES provides independent AI system audits:\n\n• Technical Audits - Review AI model performance and reliability\n• Compliance Audits - Verify regulatory compliance\n• Security Audits - Assess AI system security\n• Certification - Issue compliance certificates\n\nInterested in learning more?"
	default:
		return fmt.Sprintf("Thank you for your question about %q.\n\nI'm here to help with AI governance, compliance, risk management, and ethical AI implementation.\n\nCould you please clarify what specific aspect you'd like to know more about? For example:\n• Our services\n• Compliance requirements\n• Risk assessment\n• Pricing\n• Scheduling a consultation", question)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsWord matches whole words only; "hi" must not fire on "ethical".
func containsWord(s string, words ...string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
