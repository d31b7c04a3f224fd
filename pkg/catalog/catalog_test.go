package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `TechGear Solutions - Product Catalog

==================== PRODUCTS ====================

Product: SmartWatch Pro X
Price: ₹15,999

Product: Wireless Earbuds Elite
Price: ₹7,999

Product: Power Bank Ultra
Price: ₹3,499
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "product_info.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesProductNames(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra"}, cat.ProductNames())
	assert.Contains(t, cat.Raw(), "₹15,999")
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load(writeCatalog(t, "no products here\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestDetectProduct(t *testing.T) {
	cat := FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"What is the price of SmartWatch Pro X?", "SmartWatch Pro X", true},
		{"tell me about the smartwatch", "SmartWatch Pro X", true},
		{"do the earbuds support noise cancellation", "Wireless Earbuds Elite", true},
		{"is the powerbank in stock", "Power Bank Ultra", true},
		{"power bank capacity?", "Power Bank Ultra", true},
		{"info on the Smart Watch Pro", "SmartWatch Pro X", true},
		// fuzzy: no alias hit, but most name tokens present
		{"is the Pro X still sold?", "SmartWatch Pro X", true},
		{"what are your store hours", "", false},
		{"hello", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, ok := cat.DetectProduct(tc.query)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMentions(t *testing.T) {
	cat := FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")

	assert.True(t, cat.Mentions("how much are the Wireless Earbuds Elite"))
	assert.False(t, cat.Mentions("what's the price?"))
}
