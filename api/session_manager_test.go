package api_test

import (
	"testing"

	"rv32emu/api"
	"rv32emu/engine"
)

func TestCreateSessionAssignsUniqueIDs(t *testing.T) {
	m := api.NewSessionManager(api.NewBroadcaster())

	a, err := m.CreateSession(1000)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	b, err := m.CreateSession(1000)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("expected distinct session ids, got %q twice", a.ID)
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestDestroySessionRemovesIt(t *testing.T) {
	m := api.NewSessionManager(api.NewBroadcaster())
	sess, _ := m.CreateSession(1000)

	if !m.DestroySession(sess.ID) {
		t.Fatal("DestroySession returned false for an existing session")
	}
	if _, ok := m.GetSession(sess.ID); ok {
		t.Error("session still retrievable after DestroySession")
	}
	if m.DestroySession(sess.ID) {
		t.Error("DestroySession returned true for an already-destroyed session")
	}
}

func TestSessionWithLockSeesEngineState(t *testing.T) {
	m := api.NewSessionManager(api.NewBroadcaster())
	sess, _ := m.CreateSession(1000)

	sess.WithLock(func(e *engine.Engine) {
		e.LoadImage([]byte{0x93, 0x05, 0x50, 0x00}) // addi x11, x0, 5
		e.Tick()
	})

	if sess.Engine().Registers[11] != 5 {
		t.Errorf("x11 = %d, want 5", sess.Engine().Registers[11])
	}
}
