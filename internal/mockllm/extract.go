// Package mockllm implements a mock completion server for exercising the
// audit pipeline without a GPU. It exposes OpenAI-compatible endpoints and
// answers with toy regex extraction over financial text.
package mockllm

import (
	"regexp"
	"strings"
)

var (
	revenueRe = regexp.MustCompile(`(?i)\$?([\d,]+\.?\d*)\s*(?:billion|B|million|M)`)
	companyRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Inc|Corp|LLC|Ltd)`)
	percentRe = regexp.MustCompile(`([+-]?\d+\.?\d*)%`)
	quarterRe = regexp.MustCompile(`(?i)Q[1-4]\s+\d{4}`)
)

// ExtractFinancialInfo pulls key financial figures out of text: revenue,
// company name, percentage change, and reporting period. Matches are joined
// with " | "; when nothing matches, a generic summary line is returned.
func ExtractFinancialInfo(text string) string {
	var info []string

	if m := revenueRe.FindStringSubmatch(text); m != nil {
		info = append(info, "Revenue: $"+m[1])
	}

	if m := companyRe.FindStringSubmatch(text); m != nil {
		info = append(info, "Company: "+m[1])
	}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		info = append(info, "Change: "+m[1]+"%")
	}

	if m := quarterRe.FindString(text); m != "" {
		info = append(info, "Period: "+m)
	}

	if len(info) == 0 {
		return "Key financial metrics extracted from document."
	}

	return strings.Join(info, " | ")
}
