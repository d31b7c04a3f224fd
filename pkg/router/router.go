package router

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"techgear-support-be/internal/constant"
	"techgear-support-be/pkg/classifier"
	"techgear-support-be/pkg/events"
	"techgear-support-be/pkg/responder"
)

// Node names the terminal state a query was routed to.
type Node string

const (
	NodeResponder  Node = "responder"
	NodeEscalation Node = "escalation"
)

// Outcome is the result of routing one query end to end.
type Outcome struct {
	Answer   string
	Category classifier.Category
	Source   classifier.Source
	RoutedTo Node
}

// Generator produces a grounded answer for a query, typically via retrieval
// plus a language model.
type Generator interface {
	Answer(ctx context.Context, query string) (string, error)
}

// EventPublisher pushes domain events onto the bus. Implemented by the NATS
// publisher; nil disables eventing.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ProductLister supplies the catalog names for the listing short-circuit.
type ProductLister interface {
	ProductNames() []string
}

// EscalationMessage is the fixed reply for queries no automated path can
// answer.
var EscalationMessage = fmt.Sprintf(
	"Your query requires human support. Please contact our support team:\n\n"+
		"📧 Email: %s\n"+
		"🕒 Hours: %s\n\n"+
		"We'll get back to you as soon as possible!",
	constant.SupportEmail, constant.SupportHours,
)

// Router is a small three-node state machine: classify, then either respond
// or escalate. Unknown queries always terminate in escalation.
type Router struct {
	classifier *classifier.Classifier
	generator  Generator
	registry   *responder.Registry
	products   ProductLister
	publisher  EventPublisher
	logger     *log.Logger
}

func New(
	cls *classifier.Classifier,
	gen Generator,
	reg *responder.Registry,
	products ProductLister,
	pub EventPublisher,
	logger *log.Logger,
) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{
		classifier: cls,
		generator:  gen,
		registry:   reg,
		products:   products,
		publisher:  pub,
		logger:     logger,
	}
}

// Run routes one effective query. It never returns an error; every failure
// path degrades to a registry answer or the escalation message.
func (r *Router) Run(ctx context.Context, sessionID, query string) Outcome {
	res := r.classifier.Classify(ctx, query)
	if res.Err != nil {
		r.logger.Printf("router: classified %q via fallback (%v)", query, res.Err)
	}

	if res.Category == classifier.CategoryUnknown {
		return r.escalate(sessionID, query, res)
	}
	return r.respond(ctx, query, res)
}

var listingTriggers = []string{
	"what do you sell", "which products", "what products", "list of products", "list products",
}

func (r *Router) respond(ctx context.Context, query string, res classifier.Result) Outcome {
	outcome := Outcome{Category: res.Category, Source: res.Source, RoutedTo: NodeResponder}

	// Listing questions have a closed-form answer; skip retrieval entirely.
	if res.Category == classifier.CategoryProducts && r.isListingQuery(query) {
		outcome.Answer = "We sell: " + strings.Join(r.products.ProductNames(), ", ") + ". Ask me about any of them!"
		return outcome
	}

	if r.generator != nil {
		answer, err := r.generator.Answer(ctx, query)
		if err == nil {
			outcome.Answer = answer
			return outcome
		}
		r.logger.Printf("router: generation failed for %q, using registry: %v", query, err)
	}

	outcome.Answer = r.registry.Lookup(query)
	return outcome
}

func (r *Router) isListingQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, trigger := range listingTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func (r *Router) escalate(sessionID, query string, res classifier.Result) Outcome {
	if r.publisher != nil {
		event := events.NewEscalationEvent(sessionID, query, string(res.Category))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.publisher.Publish(ctx, event); err != nil {
				r.logger.Printf("router: escalation event publish failed: %v", err)
			}
		}()
	}

	return Outcome{
		Answer:   EscalationMessage,
		Category: res.Category,
		Source:   res.Source,
		RoutedTo: NodeEscalation,
	}
}
