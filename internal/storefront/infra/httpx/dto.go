package httpx

// QuoteRequest is the body of POST /products/{id}/quote. Selections map a
// custom option id to the chosen value id.
type QuoteRequest struct {
	Selections map[string]string `json:"selections,omitempty"`
	ServiceIDs []string          `json:"service_ids,omitempty"`
	Quantity   int               `json:"quantity"`
}

// QuoteResponse is the itemized price breakdown. Amounts are formatted to
// two decimal places here, at the display edge; the composer itself carries
// full precision.
type QuoteResponse struct {
	ProductID     string `json:"product_id"`
	Currency      string `json:"currency"`
	BasePrice     string `json:"base_price"`
	OptionsDelta  string `json:"options_delta"`
	ServicesDelta string `json:"services_delta"`
	UnitPrice     string `json:"unit_price"`
	LineTotal     string `json:"line_total"`
	Quantity      int    `json:"quantity"`
}

type TimelineStepResponse struct {
	Status    string `json:"status"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
	Pending   bool   `json:"pending"`
}

// OrderViewResponse carries everything the order page renders. Timeline is
// omitted entirely for cancelled orders.
type OrderViewResponse struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Label    string                 `json:"label"`
	Progress float64                `json:"progress"`
	Timeline []TimelineStepResponse `json:"timeline,omitempty"`
	Actions  []string               `json:"actions"`
}

type CancellationRequest struct {
	Reason string `json:"reason"`
}

type CancellationResponse struct {
	OrderID string `json:"order_id"`
	State   string `json:"state"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
