package rag

import (
	"fmt"
	"strings"
)

const answerPromptTemplate = `You are a customer support assistant for TechGear Solutions, an electronics retailer.

Answer the customer's question using ONLY the catalog information below.
Rules:
- Be concise: one to three sentences.
- If the information is not in the catalog, say exactly: "Information not available. Please contact support@techgear.com"
- COD means cash on delivery, EMI means monthly installments, UPI is an instant payment method; expand these when the customer asks about them.
- When the question names a specific product, answer for that product only.

Catalog information:
%s

Customer question: %s

Answer:`

// buildPrompt assembles the grounded prompt from the retrieved chunks.
func buildPrompt(query string, chunks []ScoredChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return fmt.Sprintf(answerPromptTemplate, strings.Join(parts, "\n---\n"), query)
}
