package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Product is one entry from the catalog file. Only the name is authoritative;
// aliases are derived for mention detection.
type Product struct {
	Name    string
	aliases []string
}

// Catalog holds the flat product-name list loaded once at startup. It is
// read-only after Load and safe for concurrent use.
type Catalog struct {
	products []Product
	raw      string
}

// compound aliases that customers use but that do not survive word-by-word
// derivation from the product names
var compoundAliases = map[string][]string{
	"SmartWatch Pro X":      {"smartwatch", "smart watch", "watch"},
	"Wireless Earbuds Elite": {"earbuds", "earbud"},
	"Power Bank Ultra":      {"power bank", "powerbank"},
}

// Load reads the catalog text file and extracts every "Product: <name>" line.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()

	var (
		products []Product
		rawLines []string
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		rawLines = append(rawLines, line)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "Product: "); ok {
			products = append(products, newProduct(strings.TrimSpace(name)))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog %s contains no products", path)
	}

	return &Catalog{products: products, raw: strings.Join(rawLines, "\n")}, nil
}

// FromNames builds a catalog directly from product names. Used by tests and
// the offline simulation where no catalog file is wanted.
func FromNames(names ...string) *Catalog {
	products := make([]Product, 0, len(names))
	for _, n := range names {
		products = append(products, newProduct(n))
	}
	return &Catalog{products: products}
}

func newProduct(name string) Product {
	lower := strings.ToLower(name)
	aliases := []string{lower}
	for _, w := range strings.Fields(lower) {
		if len(w) >= 4 {
			aliases = append(aliases, w)
		}
	}
	aliases = append(aliases, compoundAliases[name]...)
	return Product{Name: name, aliases: aliases}
}

// ProductNames returns the canonical names in catalog order.
func (c *Catalog) ProductNames() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// Raw returns the full catalog text as loaded from disk.
func (c *Catalog) Raw() string {
	return c.raw
}

// Mentions reports whether the query names any catalog product, literally or
// via a known alias.
func (c *Catalog) Mentions(query string) bool {
	_, ok := c.DetectProduct(query)
	return ok
}

// DetectProduct resolves the canonical product name referenced by the text.
// Literal alias matches win; otherwise the closest fuzzy match above the
// similarity threshold is used, first in catalog order on ties.
func (c *Catalog) DetectProduct(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, p := range c.products {
		for _, alias := range p.aliases {
			if strings.Contains(lower, alias) {
				return p.Name, true
			}
		}
	}

	// Fuzzy pass: token overlap between the query and the product name.
	const threshold = 0.5
	best := -1
	bestScore := 0.0
	queryTokens := tokenSet(lower)
	for i, p := range c.products {
		score := overlap(queryTokens, tokenSet(strings.ToLower(p.Name)))
		if score >= threshold && score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best >= 0 {
		return c.products[best].Name, true
	}
	return "", false
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ".,!?\"'")
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// overlap is the share of product-name tokens present in the query.
func overlap(query, name map[string]struct{}) float64 {
	if len(name) == 0 {
		return 0
	}
	matched := 0
	for w := range name {
		if _, ok := query[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(name))
}
