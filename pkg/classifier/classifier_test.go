package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"techgear-support-be/pkg/llm"
)

const defaultTestTimeout = 2 * time.Second

// stubProvider returns a canned completion or error.
type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.reply, s.err
}

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Category
	}{
		{"Hi", CategoryGeneral},
		{"hello there", CategoryGeneral},
		{"Thanks!", CategoryGeneral},
		{"ok", CategoryGeneral},
		{"What is the price of SmartWatch Pro X?", CategoryProducts},
		{"which products do you sell", CategoryProducts},
		{"how do I return my order", CategoryReturns},
		{"refund please", CategoryReturns},
		{"what are your support hours", CategoryGeneral},
		{"how do I contact you", CategoryGeneral},
		{"asdf qwerty", CategoryUnknown},
		{"tell me a joke", CategoryUnknown},
		// "return policy" hits the returns bucket before general
		{"what is your return policy", CategoryReturns},
		// greeting wins over keyword buckets for leading greetings
		{"hi, what products do you have", CategoryGeneral},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, FallbackClassify(tc.query))
		})
	}
}

func TestFallbackClassifyIsDeterministic(t *testing.T) {
	query := "what is the price of the earbuds"
	first := FallbackClassify(query)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, FallbackClassify(query))
	}
}

func TestClassifyUsesModel(t *testing.T) {
	c := New(&stubProvider{reply: " Products \n"}, defaultTestTimeout, nil)

	res := c.Classify(context.Background(), "do you sell chargers")

	assert.Equal(t, CategoryProducts, res.Category)
	assert.Equal(t, SourceModel, res.Source)
	assert.NoError(t, res.Err)
}

func TestClassifyCoercesInvalidModelOutput(t *testing.T) {
	c := New(&stubProvider{reply: "electronics"}, defaultTestTimeout, nil)

	res := c.Classify(context.Background(), "do you sell chargers")

	assert.Equal(t, CategoryUnknown, res.Category)
	assert.Equal(t, SourceModel, res.Source)
}

func TestClassifyFallsBackOnModelError(t *testing.T) {
	boom := errors.New("upstream down")
	c := New(&stubProvider{err: boom}, defaultTestTimeout, nil)

	res := c.Classify(context.Background(), "what is your return policy")

	assert.Equal(t, CategoryReturns, res.Category)
	assert.Equal(t, SourceFallback, res.Source)
	assert.ErrorIs(t, res.Err, boom)
}

func TestClassifyWithoutProvider(t *testing.T) {
	c := New(nil, defaultTestTimeout, nil)

	res := c.Classify(context.Background(), "what are your hours")

	assert.Equal(t, CategoryGeneral, res.Category)
	assert.Equal(t, SourceFallback, res.Source)
	assert.ErrorIs(t, res.Err, ErrNoProvider)
}
