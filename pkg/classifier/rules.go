package classifier

import "strings"

// fallbackRule is one step of the deterministic keyword cascade. Rules run in
// declaration order and the first match wins, so greetings are checked before
// the broader keyword buckets.
type fallbackRule struct {
	name     string
	match    func(q string) bool
	category Category
}

var greetings = []string{
	"hi", "hello", "hey", "greetings",
	"ok", "okay", "k",
	"thanks", "thank you", "thankyou",
	"got it", "understood",
}

var productKeywords = []string{
	"price", "cost", "feature", "product",
	"smartwatch", "earbuds", "power bank",
	"sell", "what do you", "which", "list",
}

var returnKeywords = []string{"return", "refund", "exchange", "policy"}

var generalKeywords = []string{
	"support", "hours", "contact", "help", "email", "question", "questions",
}

var fallbackRules = []fallbackRule{
	{name: "greeting", match: isGreeting, category: CategoryGeneral},
	{name: "products", match: containsAny(productKeywords), category: CategoryProducts},
	{name: "returns", match: containsAny(returnKeywords), category: CategoryReturns},
	{name: "general", match: containsAny(generalKeywords), category: CategoryGeneral},
}

// FallbackClassify runs the keyword cascade over the lowercased query and
// returns unknown when no rule fires.
func FallbackClassify(query string) Category {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, rule := range fallbackRules {
		if rule.match(q) {
			return rule.category
		}
	}
	return CategoryUnknown
}

// isGreeting matches short conversational openers exactly or as a leading
// word, so "hi there" greets but "history question" does not.
func isGreeting(q string) bool {
	trimmed := strings.TrimRight(q, "!.?")
	for _, g := range greetings {
		if trimmed == g || strings.HasPrefix(trimmed, g+" ") {
			return true
		}
	}
	return false
}

func containsAny(keywords []string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}
