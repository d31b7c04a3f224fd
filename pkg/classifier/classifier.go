package classifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"techgear-support-be/pkg/llm"
)

// Category is the routing label assigned to a customer query.
type Category string

const (
	CategoryProducts Category = "products"
	CategoryReturns  Category = "returns"
	CategoryGeneral  Category = "general"
	CategoryUnknown  Category = "unknown"
)

// Valid reports whether the category is one of the four routing labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryProducts, CategoryReturns, CategoryGeneral, CategoryUnknown:
		return true
	}
	return false
}

// Source records which path produced the classification.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result carries the category together with its provenance. When the model
// path was skipped or failed, Err holds the reason and Source is fallback.
type Result struct {
	Category Category
	Source   Source
	Err      error
}

// ErrNoProvider is reported when no language model is configured and the
// classifier goes straight to the keyword rules.
var ErrNoProvider = errors.New("classifier: no llm provider configured")

const classifyPrompt = `Classify the following customer support query into exactly one category.

Categories:
- products: questions about product details, prices, features, or availability
- returns: questions about returns, refunds, exchanges, or return policy
- general: general support questions like contact info, hours, or shipping
- unknown: anything that does not fit the above

Respond with only the category name, nothing else.

Query: %s
Category:`

// Classifier assigns one of four categories to a query, preferring the
// language model and degrading to deterministic keyword rules.
type Classifier struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   *log.Logger
}

func New(provider llm.LLMProvider, timeout time.Duration, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Classifier{provider: provider, timeout: timeout, logger: logger}
}

// Classify never fails: any model error is absorbed into a fallback result.
func (c *Classifier) Classify(ctx context.Context, query string) Result {
	if c.provider == nil {
		return Result{Category: FallbackClassify(query), Source: SourceFallback, Err: ErrNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.provider.Generate(ctx, fmt.Sprintf(classifyPrompt, query), llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("classifier: model call failed, using keyword rules: %v", err)
		return Result{Category: FallbackClassify(query), Source: SourceFallback, Err: err}
	}

	category := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !category.Valid() {
		// The model wandered off the four labels; coerce rather than guess.
		c.logger.Printf("classifier: unexpected model output %q, coerced to unknown", raw)
		category = CategoryUnknown
	}
	return Result{Category: category, Source: SourceModel}
}
