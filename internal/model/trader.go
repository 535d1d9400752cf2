package model

import (
	"encoding/json"
	"math"
)

// TokenCount is a token symbol and how many of a trader's swaps it was the
// subject of.
type TokenCount struct {
	Token  string `json:"token"`
	Trades int    `json:"trades"`
}

// TraderStats summarizes one wallet's swap history.
type TraderStats struct {
	Address       string       `json:"address"`
	TotalTrades   int          `json:"total_trades"`
	BuyTrades     int          `json:"buy_trades"`
	SellTrades    int          `json:"sell_trades"`
	TotalVolume   float64      `json:"total_volume"`
	WinRate       float64      `json:"win_rate"`
	AvgTradeSize  float64      `json:"avg_trade_size"`
	LastTradeTime string       `json:"last_trade_time"`
	TopTokens     []TokenCount `json:"top_tokens"`
	EstimatedPnL  float64      `json:"estimated_pnl"`
}

// MarshalJSON encodes non-finite numbers as null, which encoding/json
// otherwise rejects.
func (s TraderStats) MarshalJSON() ([]byte, error) {
	type Alias TraderStats
	return json.Marshal(struct {
		Alias
		TotalVolume  *float64 `json:"total_volume"`
		WinRate      *float64 `json:"win_rate"`
		AvgTradeSize *float64 `json:"avg_trade_size"`
		EstimatedPnL *float64 `json:"estimated_pnl"`
	}{
		Alias:        Alias(s),
		TotalVolume:  finiteOrNil(s.TotalVolume),
		WinRate:      finiteOrNil(s.WinRate),
		AvgTradeSize: finiteOrNil(s.AvgTradeSize),
		EstimatedPnL: finiteOrNil(s.EstimatedPnL),
	})
}

// UnmarshalJSON decodes TraderStats; null numbers become NaN.
func (s *TraderStats) UnmarshalJSON(data []byte) error {
	type Alias TraderStats
	var a struct {
		Alias
		TotalVolume  *float64 `json:"total_volume"`
		WinRate      *float64 `json:"win_rate"`
		AvgTradeSize *float64 `json:"avg_trade_size"`
		EstimatedPnL *float64 `json:"estimated_pnl"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = TraderStats(a.Alias)
	s.TotalVolume = valueOrNaN(a.TotalVolume)
	s.WinRate = valueOrNaN(a.WinRate)
	s.AvgTradeSize = valueOrNaN(a.AvgTradeSize)
	s.EstimatedPnL = valueOrNaN(a.EstimatedPnL)
	return nil
}

// TradeAnalysis is the per-token breakdown of a trader's swaps.
type TradeAnalysis struct {
	Token        string  `json:"token"`
	TotalTrades  int     `json:"total_trades"`
	BuyTrades    int     `json:"buy_trades"`
	SellTrades   int     `json:"sell_trades"`
	TotalVolume  float64 `json:"total_volume"`
	BuyVolume    float64 `json:"buy_volume"`
	SellVolume   float64 `json:"sell_volume"`
	AvgPrice     float64 `json:"avg_price"`
	EstimatedPnL float64 `json:"estimated_pnl"`
	FirstTrade   string  `json:"first_trade"`
	LastTrade    string  `json:"last_trade"`
}

func (t TradeAnalysis) MarshalJSON() ([]byte, error) {
	type Alias TradeAnalysis
	return json.Marshal(struct {
		Alias
		TotalVolume  *float64 `json:"total_volume"`
		BuyVolume    *float64 `json:"buy_volume"`
		SellVolume   *float64 `json:"sell_volume"`
		AvgPrice     *float64 `json:"avg_price"`
		EstimatedPnL *float64 `json:"estimated_pnl"`
	}{
		Alias:        Alias(t),
		TotalVolume:  finiteOrNil(t.TotalVolume),
		BuyVolume:    finiteOrNil(t.BuyVolume),
		SellVolume:   finiteOrNil(t.SellVolume),
		AvgPrice:     finiteOrNil(t.AvgPrice),
		EstimatedPnL: finiteOrNil(t.EstimatedPnL),
	})
}

func (t *TradeAnalysis) UnmarshalJSON(data []byte) error {
	type Alias TradeAnalysis
	var a struct {
		Alias
		TotalVolume  *float64 `json:"total_volume"`
		BuyVolume    *float64 `json:"buy_volume"`
		SellVolume   *float64 `json:"sell_volume"`
		AvgPrice     *float64 `json:"avg_price"`
		EstimatedPnL *float64 `json:"estimated_pnl"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = TradeAnalysis(a.Alias)
	t.TotalVolume = valueOrNaN(a.TotalVolume)
	t.BuyVolume = valueOrNaN(a.BuyVolume)
	t.SellVolume = valueOrNaN(a.SellVolume)
	t.AvgPrice = valueOrNaN(a.AvgPrice)
	t.EstimatedPnL = valueOrNaN(a.EstimatedPnL)
	return nil
}

// TraderAnalysis bundles a trader's stats, history and per-token breakdown.
type TraderAnalysis struct {
	Stats         TraderStats       `json:"stats"`
	Transactions  []SwapTransaction `json:"transactions"`
	TokenAnalysis []TradeAnalysis   `json:"token_analysis"`
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
