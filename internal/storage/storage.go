package storage

import (
	"context"

	"github.com/0xali3n/gmgn/internal/model"
)

// Storage defines a sink for swap histories.
type Storage interface {
	PutSwapBatch(ctx context.Context, address string, swaps []model.SwapTransaction) error
}

// SwapRecord is a swap tagged with the account it was fetched for.
type SwapRecord struct {
	Address string `json:"address"`
	model.SwapTransaction
}
