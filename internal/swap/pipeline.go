package swap

import (
	"strconv"
	"strings"
	"time"

	"github.com/0xali3n/gmgn/internal/metrics"
	"github.com/0xali3n/gmgn/internal/model"
)

// TimestampLayout mirrors the en-US locale date/time rendering.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Pipeline turns raw account transactions into display-ready swap records.
type Pipeline struct {
	extractor *Extractor
	location  *time.Location
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLocation sets the time zone used to render timestamps.
func WithLocation(loc *time.Location) PipelineOption {
	return func(p *Pipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

func NewPipeline(extractor *Extractor, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildSwapHistory keeps swap-like transactions, reverses them so the most
// recent one comes first, and drops records missing a token, amount or hash.
func (p *Pipeline) BuildSwapHistory(raw []model.RawTransaction) []model.SwapTransaction {
	candidates := make([]model.RawTransaction, 0, len(raw))
	for _, tx := range raw {
		if IsSwap(tx) {
			candidates = append(candidates, tx)
		}
	}

	out := make([]model.SwapTransaction, 0, len(candidates))
	for i := len(candidates) - 1; i >= 0; i-- {
		record := p.transform(candidates[i])
		if !keep(record) {
			continue
		}
		out = append(out, record)
	}

	metrics.RecordSwapPipeline(len(candidates), len(out), len(candidates)-len(out))
	return out
}

func (p *Pipeline) transform(tx model.RawTransaction) model.SwapTransaction {
	info := p.extractor.Extract(tx)

	record := model.SwapTransaction{
		Hash:       orNotAvailable(tx.Hash),
		Timestamp:  model.NotAvailable,
		Action:     info.Action,
		FromToken:  info.FromToken,
		ToToken:    info.ToToken,
		FromAmount: info.FromAmount,
		ToAmount:   info.ToAmount,
		Protocol:   model.NotAvailable,
		Contract:   orNotAvailable(tx.FunctionName()),
	}

	if micros, ok := parseMicros(tx.Timestamp); ok {
		record.TimestampMicros = micros
		record.Timestamp = time.UnixMilli(micros / 1000).In(p.location).Format(TimestampLayout)
	}

	return record
}

func keep(record model.SwapTransaction) bool {
	return record.FromToken != model.NotAvailable &&
		record.ToToken != model.NotAvailable &&
		record.FromAmount != model.NotAvailable &&
		record.ToAmount != model.NotAvailable &&
		record.Hash != model.NotAvailable
}

func parseMicros(ts string) (int64, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, false
	}
	micros, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, false
	}
	return micros, true
}
