package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/0xali3n/gmgn/internal/model"
)

func TestJsonlStoragePutSwapBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "swaps.jsonl")
	sink := NewJsonlStorage(path)

	swaps := []model.SwapTransaction{
		{Hash: "0x2", Timestamp: "t2", Action: model.ActionSell, FromToken: "MOON", ToToken: "AptosCoin", FromAmount: "5", ToAmount: "12", Protocol: model.NotAvailable, Contract: "0xabc::router::swap"},
		{Hash: "0x1", Timestamp: "t1", Action: model.ActionBuy, FromToken: "AptosCoin", ToToken: "MOON", FromAmount: "10", ToAmount: "5", Protocol: model.NotAvailable, Contract: "0xabc::router::swap"},
	}

	if err := sink.PutSwapBatch(context.Background(), "0xabc", swaps); err != nil {
		t.Fatalf("put batch: %v", err)
	}
	if err := sink.PutSwapBatch(context.Background(), "0xdef", swaps[:1]); err != nil {
		t.Fatalf("put second batch: %v", err)
	}
	if err := sink.PutSwapBatch(context.Background(), "0xdef", nil); err != nil {
		t.Fatalf("put empty batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var records []SwapRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record SwapRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []SwapRecord{
		{Address: "0xabc", SwapTransaction: swaps[0]},
		{Address: "0xabc", SwapTransaction: swaps[1]},
		{Address: "0xdef", SwapTransaction: swaps[0]},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records mismatch: %+v != %+v", records, want)
	}
}
