package scam

import "regexp"

type Severity string

const (
	SeverityNone   Severity = ""
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Category string

const (
	CategoryFinancialRequest    Category = "financial-request"
	CategorySensitivePersonal   Category = "sensitive-personal-info"
	CategorySuspiciousOffer     Category = "suspicious-offer"
	CategoryUrgencyTactic       Category = "urgency-tactic"
	CategorySuspiciousLink      Category = "suspicious-link"
	CategoryOffPlatformRedirect Category = "off-platform-redirect"
)

// Warning is the advisory classification of one message. It annotates
// display and never blocks sending.
type Warning struct {
	IsScammy bool       `json:"is_scammy"`
	Severity Severity   `json:"severity,omitempty"`
	Reasons  []Category `json:"reasons,omitempty"`
}

type detector struct {
	category Category
	pattern  *regexp.Regexp
}

// Detector order is fixed so reason lists come out in a stable order.
var detectors = []detector{
	{CategoryFinancialRequest, regexp.MustCompile(`(?i)\b(send|transfer|wire|deposit|lend|loan)\b.{0,40}\b(money|cash|payment|funds?|\$|sgd|dollars?)\b`)},
	{CategoryFinancialRequest, regexp.MustCompile(`(?i)\b(paypal|paynow|paylah|western union|bank\s*transfer|bitcoin|crypto(currency)?|gift\s*cards?)\b`)},
	{CategorySensitivePersonal, regexp.MustCompile(`(?i)\b(nric|passport\s*(number|no)|singpass|password|pin\s*(code|number)?|otp|one[- ]time\s*password|cvv|bank\s*account\s*(number|details))\b`)},
	{CategorySuspiciousOffer, regexp.MustCompile(`(?i)\b(guaranteed\s*(returns?|income|profit)|get\s*rich|easy\s*money|double\s*your|investment\s*opportunity|work\s*from\s*home.{0,30}earn|lottery|jackpot|prize\s*money)\b`)},
	{CategoryUrgencyTactic, regexp.MustCompile(`(?i)\b(urgent(ly)?|immediately|right\s*now|act\s*now|last\s*chance|expires?\s*(today|soon)|limited\s*time|don'?t\s*tell\s*anyone)\b`)},
	{CategorySuspiciousLink, regexp.MustCompile(`(?i)(bit\.ly|tinyurl\.com|goo\.gl|t\.co|shorturl|https?://[^\s]*\.(xyz|top|club|online|site)\b)`)},
	{CategoryOffPlatformRedirect, regexp.MustCompile(`(?i)\b(whatsapp|telegram|wechat|add\s*me\s*on|chat\s*(me\s*)?(on|at)\s*(insta(gram)?|snap(chat)?)|move\s*(this|our\s*chat)\s*(to|off))\b`)},
}

// Analyze classifies message text. Pure and synchronous; always returns
// a value, even for the empty string.
func Analyze(content string) Warning {
	var reasons []Category
	seen := make(map[Category]struct{}, len(detectors))

	for _, d := range detectors {
		if _, ok := seen[d.category]; ok {
			continue
		}
		if d.pattern.MatchString(content) {
			seen[d.category] = struct{}{}
			reasons = append(reasons, d.category)
		}
	}

	if len(reasons) == 0 {
		return Warning{IsScammy: false}
	}

	severity := SeverityLow
	switch {
	case len(reasons) >= 3:
		severity = SeverityHigh
	case len(reasons) == 2:
		severity = SeverityMedium
	}

	return Warning{
		IsScammy: true,
		Severity: severity,
		Reasons:  reasons,
	}
}
