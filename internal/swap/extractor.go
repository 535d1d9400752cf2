package swap

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/model"
	"github.com/0xali3n/gmgn/internal/token"
)

// IsSwap reports whether the transaction's entry function looks like a swap.
func IsSwap(tx model.RawTransaction) bool {
	function := tx.FunctionName()
	if function == "" {
		return false
	}

	parts := strings.Split(function, "::")
	last := parts[len(parts)-1]

	return strings.Contains(last, "swap") ||
		strings.Contains(last, "exchange") ||
		strings.Contains(last, "trade") ||
		strings.Contains(function, "swap") ||
		strings.Contains(function, "router") ||
		strings.Contains(function, "aggregator")
}

// Extractor derives swap details from a raw transaction.
type Extractor struct {
	resolver *token.Resolver
	logger   *zap.Logger
}

// NewExtractor creates an extractor that resolves token symbols with resolver.
func NewExtractor(resolver *token.Resolver, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{resolver: resolver, logger: logger}
}

// Extract returns the swap details of tx. Fields that cannot be determined
// are "N/A"; malformed input yields the all-"N/A" buy.
func (e *Extractor) Extract(tx model.RawTransaction) model.SwapInfo {
	info, err := e.extract(tx)
	if err != nil {
		e.logger.Debug("swap extraction failed", zap.String("hash", tx.Hash), zap.Error(err))
		return model.FallbackSwapInfo()
	}
	return info
}

func (e *Extractor) extract(tx model.RawTransaction) (model.SwapInfo, error) {
	info := model.FallbackSwapInfo()

	for _, event := range tx.Events {
		if event.Type == "" || event.Data == nil {
			continue
		}
		if !strings.Contains(event.Type, "Swap") && !strings.Contains(event.Type, "swap") {
			continue
		}

		fromAmount, toAmount := event.Data["from_amount"], event.Data["to_amount"]
		if truthy(fromAmount) && truthy(toAmount) {
			info.FromAmount = orNotAvailable(argumentText(fromAmount))
			info.ToAmount = orNotAvailable(argumentText(toAmount))
		}

		fromToken, toToken := event.Data["from_token"], event.Data["to_token"]
		if truthy(fromToken) && truthy(toToken) {
			from, err := e.resolve(fromToken)
			if err != nil {
				return model.SwapInfo{}, fmt.Errorf("event from_token: %w", err)
			}
			to, err := e.resolve(toToken)
			if err != nil {
				return model.SwapInfo{}, fmt.Errorf("event to_token: %w", err)
			}
			info.FromToken = from
			info.ToToken = to
		}
	}

	if tx.Payload != nil {
		args := tx.Payload.Arguments
		if info.FromAmount == model.NotAvailable && len(args) > 0 {
			info.FromAmount = orNotAvailable(argumentText(args[0]))
		}
		if info.ToAmount == model.NotAvailable && len(args) > 1 {
			info.ToAmount = orNotAvailable(argumentText(args[1]))
		}

		typeArgs := tx.Payload.TypeArguments
		if info.FromToken == model.NotAvailable && len(typeArgs) > 0 {
			from, err := e.resolve(typeArgs[0])
			if err != nil {
				return model.SwapInfo{}, fmt.Errorf("type argument 0: %w", err)
			}
			info.FromToken = from
		}
		if info.ToToken == model.NotAvailable && len(typeArgs) > 1 {
			to, err := e.resolve(typeArgs[1])
			if err != nil {
				return model.SwapInfo{}, fmt.Errorf("type argument 1: %w", err)
			}
			info.ToToken = to
		}
	}

	if info.FromAmount != model.NotAvailable && info.FromToken != model.NotAvailable {
		info.FromAmount = token.Normalize(info.FromAmount, info.FromToken)
	}
	if info.ToAmount != model.NotAvailable && info.ToToken != model.NotAvailable {
		info.ToAmount = token.Normalize(info.ToAmount, info.ToToken)
	}

	info.Action = direction(info.FromToken, info.ToToken)
	return info, nil
}

func (e *Extractor) resolve(raw json.RawMessage) (string, error) {
	typeID, err := stringValue(raw)
	if err != nil {
		return "", err
	}
	return e.resolver.Resolve(typeID), nil
}

// direction classifies a swap relative to the native coin: spending APT is
// a buy, receiving APT or USDC is a sell.
func direction(fromToken, toToken string) model.Action {
	from := strings.ToLower(fromToken)
	if strings.Contains(from, "aptos") || strings.Contains(from, "apt") {
		return model.ActionBuy
	}
	to := strings.ToLower(toToken)
	if strings.Contains(to, "aptos") || strings.Contains(to, "apt") || strings.Contains(to, "usdc") {
		return model.ActionSell
	}
	return model.ActionBuy
}

func orNotAvailable(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
