// Package api exposes the engine over HTTP and WebSocket for integration
// tooling and live observation. It is a supplementary surface: the host
// CLI (cmd/riscv32-emu) remains the primary interface (spec.md §5).
package api

import (
	"time"

	"rv32emu/engine"
)

// SessionCreateRequest is the body of POST /api/v1/sessions. Image, if
// present, is a base64-encoded program to preload via LoadImage.
type SessionCreateRequest struct {
	MaxCycles    uint64 `json:"maxCycles,omitempty"`
	TraceEnabled bool   `json:"traceEnabled,omitempty"`
	Image        string `json:"image,omitempty"`
}

// SessionCreateResponse is the response to a session creation request.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionInfo summarizes one session for the listing endpoint.
type SessionInfo struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	PCWord    uint32    `json:"pcWord"`
	Cycles    uint64    `json:"cycles"`
}

// RunRequest is the body of POST /api/v1/sessions/{id}/run. MaxTicks
// bounds how many ticks this single run call may execute; zero means run
// to the session's configured MaxCycles budget.
type RunRequest struct {
	MaxTicks uint64 `json:"maxTicks,omitempty"`
}

// RunResponse reports what a run/step call did.
type RunResponse struct {
	TicksExecuted uint64            `json:"ticksExecuted"`
	Status        StatusResponse    `json:"status"`
	Registers     RegistersResponse `json:"registers"`
}

// StatusResponse mirrors engine.Status for JSON transport.
type StatusResponse struct {
	Kind    string `json:"kind"` // running, ended, faulted
	Fault   string `json:"fault,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToStatusResponse converts an engine.Status to its wire form.
func ToStatusResponse(s engine.Status) StatusResponse {
	resp := StatusResponse{Kind: s.Kind.String()}
	if s.Kind == engine.StatusFaulted {
		resp.Fault = s.Fault.String()
		resp.Message = s.Message
	}
	return resp
}

// RegistersResponse is the full architectural register file plus PC and
// status, returned by GET /api/v1/sessions/{id}/registers.
type RegistersResponse struct {
	Registers [engine.RegisterCount]uint32 `json:"registers"`
	PCWord    uint32                       `json:"pcWord"`
	PCByte    uint32                       `json:"pcByte"`
	Cycles    uint64                       `json:"cycles"`
	Status    StatusResponse               `json:"status"`
}

// MemoryResponse is the body of GET /api/v1/sessions/{id}/memory.
type MemoryResponse struct {
	Address uint32 `json:"address"`
	Length  uint32 `json:"length"`
	Data    []byte `json:"data"` // base64-encoded by encoding/json
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a simple acknowledgement body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StateEvent is the payload of a "state" broadcast event: a snapshot of
// the session after a step or run completes.
type StateEvent struct {
	SessionID string                        `json:"sessionId"`
	PCWord    uint32                        `json:"pcWord"`
	Registers [engine.RegisterCount]uint32  `json:"registers"`
	Status    StatusResponse                `json:"status"`
	Cycles    uint64                        `json:"cycles"`
}

// ExecutionEvent is the payload of an "execution" broadcast event: one
// tick's trace entry, mirroring trace.ExecutionEntry.
type ExecutionEvent struct {
	SessionID       string `json:"sessionId"`
	Cycle           uint64 `json:"cycle"`
	PCWord          uint32 `json:"pcWord"`
	CompositeOpcode uint8  `json:"compositeOpcode"`
}
