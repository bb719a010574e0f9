package notes

// maxCompletionTokens caps generated note length; it also bounds the
// output side of a cost estimate.
const maxCompletionTokens = 4000

// Per-1K-token USD prices, input then output, for the chat models the
// generator is normally run with.
var tokenPricing = map[string][2]float64{
	"gpt-4o-mini":   {0.000150, 0.000600},
	"gpt-4o":        {0.002500, 0.010000},
	"gpt-3.5-turbo": {0.000500, 0.001500},
}

// CostEstimate is a rough pre-flight cost figure for one Generate call.
type CostEstimate struct {
	InputTokens  int
	OutputTokens int
	USD          float64
	// Known is false for models without a price entry; the token counts
	// are still filled in.
	Known bool
}

// EstimateCost approximates the API cost of formatting a transcription
// with the given model. Input tokens use the four-characters-per-token
// heuristic; output is assumed to hit the completion cap.
func EstimateCost(transcription, model string) CostEstimate {
	est := CostEstimate{
		InputTokens:  len(transcription) / 4,
		OutputTokens: maxCompletionTokens,
	}
	price, ok := tokenPricing[model]
	if !ok {
		return est
	}
	est.Known = true
	est.USD = float64(est.InputTokens)/1000*price[0] + float64(est.OutputTokens)/1000*price[1]
	return est
}
