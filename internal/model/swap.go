package model

// NotAvailable marks a field that could not be determined.
const NotAvailable = "N/A"

// Action is the direction of a swap relative to the native coin.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
)

// SwapInfo is the per-transaction extraction result.
type SwapInfo struct {
	FromToken  string `json:"from_token"`
	ToToken    string `json:"to_token"`
	FromAmount string `json:"from_amount"`
	ToAmount   string `json:"to_amount"`
	Action     Action `json:"action"`
}

// FallbackSwapInfo is returned when nothing could be extracted.
func FallbackSwapInfo() SwapInfo {
	return SwapInfo{
		FromToken:  NotAvailable,
		ToToken:    NotAvailable,
		FromAmount: NotAvailable,
		ToAmount:   NotAvailable,
		Action:     ActionBuy,
	}
}

// Complete reports whether all four token and amount fields were resolved.
func (s SwapInfo) Complete() bool {
	return s.FromToken != NotAvailable &&
		s.ToToken != NotAvailable &&
		s.FromAmount != NotAvailable &&
		s.ToAmount != NotAvailable
}

// SwapTransaction is a normalized swap record ready for display and analytics.
type SwapTransaction struct {
	Hash            string `json:"hash"`
	Timestamp       string `json:"timestamp"`
	TimestampMicros int64  `json:"timestamp_micros,omitempty"`
	Action          Action `json:"action"`
	FromToken       string `json:"from_token"`
	ToToken         string `json:"to_token"`
	FromAmount      string `json:"from_amount"`
	ToAmount        string `json:"to_amount"`
	Protocol        string `json:"protocol"`
	Contract        string `json:"contract"`
}

// SubjectToken is the token the trade is about: the received token on a
// buy, the given-up token otherwise.
func (s SwapTransaction) SubjectToken() string {
	if s.Action == ActionBuy {
		return s.ToToken
	}
	return s.FromToken
}

// SettlementAmount is the raw amount counted as volume: the paid amount on
// a buy, the received amount otherwise.
func (s SwapTransaction) SettlementAmount() string {
	if s.Action == ActionBuy {
		return s.FromAmount
	}
	return s.ToAmount
}
