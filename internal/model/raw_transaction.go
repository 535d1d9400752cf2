package model

import "encoding/json"

// RawTransaction is a user transaction as returned by the Aptos node REST API.
// Only the fields read by swap extraction are modelled; everything else is ignored.
type RawTransaction struct {
	Hash      string   `json:"hash"`
	Timestamp string   `json:"timestamp"`
	Type      string   `json:"type,omitempty"`
	Sender    string   `json:"sender,omitempty"`
	Payload   *Payload `json:"payload,omitempty"`
	Events    []Event  `json:"events,omitempty"`
}

// Payload is the entry-function payload of a transaction.
type Payload struct {
	Function      string            `json:"function"`
	TypeArguments []json.RawMessage `json:"type_arguments,omitempty"`
	Arguments     []json.RawMessage `json:"arguments,omitempty"`
}

// Event is an emitted Move event. Data values are kept raw because their
// shape depends on the emitting module.
type Event struct {
	Type string                     `json:"type"`
	Data map[string]json.RawMessage `json:"data,omitempty"`
}

// FunctionName returns the payload function identifier or "" when absent.
func (tx RawTransaction) FunctionName() string {
	if tx.Payload == nil {
		return ""
	}
	return tx.Payload.Function
}
