// Package status normalizes the free-form status vocabulary of upstream
// payment providers into a fixed five-class taxonomy.
package status

import "strings"

// Class is the normalized status of a sale.
type Class string

const (
	Scheduled    Class = "scheduled"
	Paid         Class = "paid"
	Failed       Class = "failed"
	InCollection Class = "in_collection"
	Unknown      Class = "unknown"
)

// textRules are evaluated in order, first match wins. Text heuristics
// deliberately outrank numeric codes: providers disagree about codes far
// more than about the human-readable status words, so swapping this
// priority changes report totals.
var textRules = []struct {
	keywords []string
	class    Class
}{
	{[]string{"pago", "aprov"}, Paid},
	{[]string{"agend", "aguard", "pend"}, Scheduled},
	{[]string{"frustr", "cancel", "reemb"}, Failed},
	{[]string{"cobran", "recorr"}, InCollection},
}

// codeClasses maps the providers' numeric status codes, consulted only
// when no text keyword matched.
var codeClasses = map[int]Class{
	3: Paid,
	2: Scheduled,
	5: Failed,
	4: InCollection,
}

// Classify resolves a sale's status text and numeric code into exactly
// one Class. Both inputs are optional; with neither present the sale is
// Unknown.
func Classify(text string, code *int) Class {
	normalized := strings.ToLower(text)
	for _, rule := range textRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.class
			}
		}
	}

	if code != nil {
		if class, ok := codeClasses[*code]; ok {
			return class
		}
	}

	return Unknown
}
