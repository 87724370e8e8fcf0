package questiongen

import (
	"strings"

	"github.com/abhisek/quizrogue/internal/llm"
)

const (
	promptOverheadTokens      = 500
	outputTokensPerQuestion   = 300
	fallbackInputPerMTok      = 3.00
	fallbackOutputPerMTok     = 15.00
	maxTextBasedQuestions     = 100
	wordsPerSuggestedQuestion = 250
)

// CostEstimate is a rough pre-flight estimate of a generation run.
type CostEstimate struct {
	InputTokens  int     `json:"estimated_input_tokens"`
	OutputTokens int     `json:"estimated_output_tokens"`
	TotalTokens  int     `json:"estimated_total_tokens"`
	InputCost    float64 `json:"input_cost_usd"`
	OutputCost   float64 `json:"output_cost_usd"`
	TotalCost    float64 `json:"estimated_cost_usd"`

	// KnownPricing is false when model prices were not in the table and
	// the fallback rates were used.
	KnownPricing bool `json:"known_pricing"`
}

// EstimateCost estimates tokens and USD for generating n questions from a
// text of textLen characters with the given model.
func EstimateCost(textLen, n int, model string) CostEstimate {
	in := textLen/4 + promptOverheadTokens
	out := n * outputTokensPerQuestion

	price := llm.ModelCost{InputPerMTok: fallbackInputPerMTok, OutputPerMTok: fallbackOutputPerMTok}
	known := false
	if c := llm.LookupCost(model); c != nil {
		price, known = *c, true
	}

	est := CostEstimate{
		InputTokens:  in,
		OutputTokens: out,
		TotalTokens:  in + out,
		InputCost:    price.Cost(in, 0),
		OutputCost:   price.Cost(0, out),
		KnownPricing: known,
	}
	est.TotalCost = est.InputCost + est.OutputCost
	return est
}

// TargetCount picks how many questions to generate for a document: enough
// for a full run, more for long texts, capped at 100 from text length.
func TargetCount(text string, minNeeded, minToStart int) int {
	words := len(strings.Fields(text))
	textBased := max(minToStart, min(maxTextBasedQuestions, words/wordsPerSuggestedQuestion))
	return max(minNeeded, textBased)
}
