package responder

import (
	"fmt"
	"strings"

	"techgear-support-be/internal/constant"
)

// DefaultAnswer is returned when no rule matches the query.
const DefaultAnswer = "Information not available. Please contact " + constant.SupportEmail

// query is the precomputed view of one lookup.
type query struct {
	raw   string
	lower string
}

// rule is one step of the answer cascade. Rules run in declaration order and
// the first one to produce an answer wins.
type rule struct {
	name    string
	respond func(q query) (string, bool)
}

// Registry answers routed queries from a fixed table when no generated
// answer is available. Lookups are deterministic and side-effect free.
type Registry struct {
	rules []rule
}

func NewRegistry() *Registry {
	return &Registry{rules: defaultRules()}
}

// Lookup walks the cascade and returns the first matching answer, falling
// back to the default contact line.
func (r *Registry) Lookup(rawQuery string) string {
	q := query{raw: rawQuery, lower: strings.ToLower(rawQuery)}
	for _, rule := range r.rules {
		if answer, ok := rule.respond(q); ok {
			return answer
		}
	}
	return DefaultAnswer
}

var greetingAnswers = map[string]string{
	"hi":        "Hello! How can I help you today?",
	"hello":     "Hello! How can I help you today?",
	"hey":       "Hello! How can I help you today?",
	"greetings": "Hello! How can I help you today?",
}

var acknowledgementAnswers = map[string]string{
	"ok":         "Great! Let me know if you need anything else.",
	"okay":       "Great! Let me know if you need anything else.",
	"k":          "Great! Let me know if you need anything else.",
	"thanks":     "You're welcome! Happy to help.",
	"thank you":  "You're welcome! Happy to help.",
	"thankyou":   "You're welcome! Happy to help.",
	"got it":     "Great! Let me know if you need anything else.",
	"understood": "Great! Let me know if you need anything else.",
}

var productDetails = map[string]string{
	"smartwatch": "SmartWatch Pro X: ₹15,999. Heart rate monitoring, GPS tracking, 7-day battery life, water resistant (50m). 1-year standard warranty, 2-year extended available for ₹1,999.",
	"earbuds":    "Wireless Earbuds Elite: ₹7,999. Active noise cancellation, premium sound, 20-hour battery with charging case, water resistant. 1-year standard warranty, 2-year extended available for ₹1,999.",
	"power bank": "Power Bank Ultra: ₹3,499. 30,000mAh capacity, dual USB ports, fast charging support, compact design. 1-year standard warranty, 2-year extended available for ₹1,999.",
	"powerbank":  "Power Bank Ultra: ₹3,499. 30,000mAh capacity, dual USB ports, fast charging support, compact design. 1-year standard warranty, 2-year extended available for ₹1,999.",
}

var productPrices = map[string]string{
	"smartwatch": "SmartWatch Pro X is priced at ₹15,999.",
	"earbuds":    "Wireless Earbuds Elite are priced at ₹7,999.",
	"power bank": "Power Bank Ultra is priced at ₹3,499.",
	"powerbank":  "Power Bank Ultra is priced at ₹3,499.",
}

const productListing = "We sell: SmartWatch Pro X, Wireless Earbuds Elite, Power Bank Ultra. Ask me about any of them!"

// yes/no questions get a direct affirmative lead-in where the answer is known
var yesNoOpeners = []string{
	"can i", "can you", "do you", "does", "is", "are", "will", "have", "has", "could",
}

func isYesNoQuestion(lower string) bool {
	if !strings.HasSuffix(strings.TrimSpace(lower), "?") {
		return false
	}
	for _, opener := range yesNoOpeners {
		if strings.HasPrefix(lower, opener+" ") {
			return true
		}
	}
	return false
}

func matchExact(table map[string]string) func(query) (string, bool) {
	return func(q query) (string, bool) {
		key := strings.TrimRight(strings.TrimSpace(q.lower), "!.?")
		answer, ok := table[key]
		return answer, ok
	}
}

func containsAnyKey(lower string, table map[string]string) (string, bool) {
	for key, answer := range table {
		if strings.Contains(lower, key) {
			return answer, true
		}
	}
	return "", false
}

func containsAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func defaultRules() []rule {
	return []rule{
		{name: "greeting", respond: matchExact(greetingAnswers)},
		{name: "acknowledgement", respond: matchExact(acknowledgementAnswers)},
		{name: "product-listing", respond: func(q query) (string, bool) {
			if containsAny(q.lower, "what do you sell", "which products", "list of products", "list products", "what products") {
				return productListing, true
			}
			return "", false
		}},
		{name: "price", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "price", "cost", "how much") {
				return "", false
			}
			return priceAnswer(q.lower)
		}},
		{name: "battery", respond: func(q query) (string, bool) {
			if !strings.Contains(q.lower, "battery") {
				return "", false
			}
			switch {
			case containsAny(q.lower, "smartwatch", "watch"):
				return "SmartWatch Pro X offers up to 7 days of battery life on a single charge.", true
			case containsAny(q.lower, "earbuds", "earbud"):
				return "Wireless Earbuds Elite deliver 20 hours of total battery life with the charging case.", true
			case containsAny(q.lower, "power bank", "powerbank"):
				return "Power Bank Ultra has a 30,000mAh capacity.", true
			}
			return "", false
		}},
		{name: "warranty", respond: func(q query) (string, bool) {
			if !strings.Contains(q.lower, "warranty") {
				return "", false
			}
			if containsAny(q.lower, "extended", "2 year", "two year") {
				return "Extended warranty (2 years) is available for ₹1,999 on all products.", true
			}
			return "All products come with a 1-year standard warranty. Extended warranty (2 years) is available for ₹1,999.", true
		}},
		{name: "availability", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "in stock", "available", "availability") {
				return "", false
			}
			if answer, ok := containsAnyKey(q.lower, map[string]string{
				"smartwatch": "Yes, SmartWatch Pro X is in stock.",
				"earbuds":    "Yes, Wireless Earbuds Elite are in stock.",
				"power bank": "Yes, Power Bank Ultra is in stock.",
				"powerbank":  "Yes, Power Bank Ultra is in stock.",
			}); ok {
				return answer, true
			}
			return "All our products are currently in stock.", true
		}},
		{name: "features", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "feature", "spec", "tell me about", "details about", "about the") {
				return "", false
			}
			return containsAnyKey(q.lower, productDetails)
		}},
		{name: "return-window", respond: func(q query) (string, bool) {
			if strings.Contains(q.lower, "return") && containsAny(q.lower, "how many days", "window", "how long", "days") {
				return "You can return any product within 7 days of delivery. Refunds are processed within 5-7 business days after we receive the item.", true
			}
			return "", false
		}},
		{name: "returns", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "return", "refund", "exchange", "policy") {
				return "", false
			}
			if isYesNoQuestion(q.lower) {
				return "Yes. You can return any product within 7 days of delivery for a full refund.", true
			}
			return "Our return policy: products can be returned within 7 days of delivery with free return shipping. Refunds are processed within 5-7 business days. Exchanges are supported within the same window.", true
		}},
		{name: "shipping", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "shipping", "delivery", "deliver", "cod", "cash on delivery") {
				return "", false
			}
			return "Standard shipping is available across India, free on orders above ₹5,000. COD, EMI and UPI payments are accepted.", true
		}},
		{name: "contact", respond: func(q query) (string, bool) {
			if !containsAny(q.lower, "contact", "email", "phone", "reach", "support hours", "hours") {
				return "", false
			}
			return fmt.Sprintf("You can reach our support team at %s. Support hours: %s.", constant.SupportEmail, constant.SupportHours), true
		}},
	}
}

func priceAnswer(lower string) (string, bool) {
	if answer, ok := containsAnyKey(lower, productPrices); ok {
		return answer, true
	}
	// price asked without naming a product: quote everything
	return "Prices: SmartWatch Pro X ₹15,999, Wireless Earbuds Elite ₹7,999, Power Bank Ultra ₹3,499.", true
}
