package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/0xali3n/gmgn/internal/model"
)

// JsonlStorage writes swap records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

var _ Storage = (*JsonlStorage)(nil)

// PutSwapBatch appends a batch of swaps as JSON lines.
func (s *JsonlStorage) PutSwapBatch(_ context.Context, address string, swaps []model.SwapTransaction) error {
	if len(swaps) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, swap := range swaps {
		line, err := json.Marshal(SwapRecord{Address: address, SwapTransaction: swap})
		if err != nil {
			return fmt.Errorf("marshal swap record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write swap record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
