package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/0xali3n/gmgn/internal/model"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("GMGN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GMGN_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(addr, os.Getenv("GMGN_TEST_REDIS_PASSWORD"), 0)
	defer c.Close()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	const address = "0xcache-test"
	if _, ok, err := c.GetAnalysis(ctx, address+"-missing"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	analysis := model.TraderAnalysis{
		Stats:         model.TraderStats{Address: address, TotalTrades: 1, BuyTrades: 1, WinRate: 100, LastTradeTime: "t1", TopTokens: []model.TokenCount{{Token: "MOON", Trades: 1}}},
		Transactions:  []model.SwapTransaction{{Hash: "0x1", Action: model.ActionBuy, FromToken: "AptosCoin", ToToken: "MOON"}},
		TokenAnalysis: []model.TradeAnalysis{{Token: "MOON", TotalTrades: 1}},
	}
	if err := c.SaveAnalysis(ctx, address, analysis, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := c.GetAnalysis(ctx, address)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Stats.Address != address || len(got.Transactions) != 1 || got.TokenAnalysis[0].Token != "MOON" {
		t.Fatalf("cached analysis mismatch: %+v", got)
	}
}
