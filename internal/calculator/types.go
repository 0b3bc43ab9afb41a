package calculator

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for the binary endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// AccumulateRequest is the JSON body for POST /calculator/accumulate/{op}.
type AccumulateRequest struct {
	Values []float64 `json:"values"`
}

// AccumulateResponse is the JSON response for POST /calculator/accumulate/{op}.
type AccumulateResponse struct {
	Operation string    `json:"operation"`
	Values    []float64 `json:"values"`
	Result    float64   `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op     string    `json:"op"`     // "add", "subtract", "multiply", "divide" or a short form
	Values []float64 `json:"values"` // operands folded into the running value
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	// Precision rounds the result; nil uses the configured default and a
	// negative value disables rounding.
	Precision *int        `json:"precision,omitempty"`
	Steps     []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Steps     []ChainResult `json:"steps"`
	Result    float64       `json:"result"`
	Precision *int          `json:"precision,omitempty"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string    `json:"op"`
	Values []float64 `json:"values"`
	Result float64   `json:"result"`
}
