package api

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"

	"rv32emu/engine"
)

const defaultMaxCycles = 1_000_000

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	maxCycles := req.MaxCycles
	if maxCycles == 0 {
		maxCycles = defaultMaxCycles
	}

	sess, err := s.sessions.CreateSession(maxCycles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	debugLog("created session %s (maxCycles=%d)", sess.ID, maxCycles)

	if req.Image != "" {
		data, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			writeError(w, http.StatusBadRequest, "image is not valid base64")
			return
		}
		if len(data) > engine.MemorySize {
			writeError(w, http.StatusBadRequest, "image exceeds the address space")
			return
		}
		sess.WithLock(func(e *engine.Engine) { e.LoadImage(data) })
	}

	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.ListSessions())
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if !s.sessions.DestroySession(sessionID) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// handleLoadProgram handles POST /api/v1/sessions/{id}/load. The request
// body is the raw little-endian program image, not JSON (spec.md §6).
func (s *Server) handleLoadProgram(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := s.sessions.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, engine.MemorySize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return
	}
	if len(data) > engine.MemorySize {
		writeError(w, http.StatusBadRequest, "image exceeds the address space")
		return
	}

	sess.WithLock(func(e *engine.Engine) {
		e.Init()
		e.LoadImage(data)
	})

	s.broadcaster.BroadcastState(sessionID, snapshotState(sessionID, sess))
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := s.sessions.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.tick(sess, 1))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := s.sessions.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	budget := req.MaxTicks
	if budget == 0 {
		budget = sess.MaxCycles
	}

	writeJSON(w, http.StatusOK, s.tick(sess, budget))
}

// tick runs up to budget ticks, or until the engine stops running,
// broadcasting an execution event per tick and one state event once done.
func (s *Server) tick(sess *Session, budget uint64) RunResponse {
	var executed uint64
	sess.WithLock(func(e *engine.Engine) {
		for executed < budget && e.Status().Running() {
			word, _ := e.Memory.ReadWord(e.PC * 4)
			pcWord := e.PC
			e.Tick()
			sess.cycles++
			executed++

			s.broadcaster.BroadcastExecution(sess.ID, ExecutionEvent{
				SessionID:       sess.ID,
				Cycle:           sess.cycles,
				PCWord:          pcWord,
				CompositeOpcode: compositeOpcode(word),
			})
		}
	})

	s.broadcaster.BroadcastState(sess.ID, snapshotState(sess.ID, sess))

	var resp RunResponse
	resp.TicksExecuted = executed
	sess.WithLock(func(e *engine.Engine) {
		resp.Status = ToStatusResponse(e.Status())
		resp.Registers = registersResponse(e, sess.cycles)
	})
	return resp
}

func (s *Server) handleGetRegisters(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := s.sessions.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var resp RegistersResponse
	sess.WithLock(func(e *engine.Engine) {
		resp = registersResponse(e, sess.cycles)
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := s.sessions.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	addr, err := strconv.ParseUint(r.URL.Query().Get("addr"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "addr query parameter must be a non-negative integer")
		return
	}
	length, err := strconv.ParseUint(r.URL.Query().Get("len"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "len query parameter must be a non-negative integer")
		return
	}
	if addr+length > engine.MemorySize {
		writeError(w, http.StatusBadRequest, "requested range exceeds the address space")
		return
	}

	data := make([]byte, length)
	sess.WithLock(func(e *engine.Engine) {
		copy(data, e.Memory.Bytes()[addr:addr+length])
	})

	writeJSON(w, http.StatusOK, MemoryResponse{
		Address: uint32(addr),
		Length:  uint32(length),
		Data:    data,
	})
}

func registersResponse(e *engine.Engine, cycles uint64) RegistersResponse {
	return RegistersResponse{
		Registers: e.Registers,
		PCWord:    e.PC,
		PCByte:    e.PC << 2,
		Cycles:    cycles,
		Status:    ToStatusResponse(e.Status()),
	}
}

func snapshotState(sessionID string, sess *Session) StateEvent {
	var ev StateEvent
	sess.WithLock(func(e *engine.Engine) {
		ev = StateEvent{
			SessionID: sessionID,
			PCWord:    e.PC,
			Registers: e.Registers,
			Status:    ToStatusResponse(e.Status()),
			Cycles:    sess.cycles,
		}
	})
	return ev
}

// compositeOpcode replicates the engine's dispatch key computation from a
// raw instruction word, for event reporting outside the engine package
// (decode stays unexported there; the host only observes state).
func compositeOpcode(word uint32) uint8 {
	opcode5 := (word >> 2) & 0x1F
	funct3 := (word >> 12) & 0x7
	return uint8((opcode5 << 3) | funct3)
}
