package client

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hasenbanck/korangar/internal/data"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/offline"
	"github.com/hasenbanck/korangar/internal/persist"
	"github.com/hasenbanck/korangar/internal/scripting"
	"go.uber.org/zap/zaptest"
)

func newOffline(t *testing.T, dbPath string, opts offline.Options) *offline.Provider {
	t.Helper()
	log := zaptest.NewLogger(t)
	db, err := persist.Open(context.Background(), dbPath, log)
	if err != nil {
		t.Fatalf("persist.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	lib, err := data.Default()
	if err != nil {
		t.Fatalf("data.Default: %v", err)
	}
	scripts, err := scripting.NewEngine("", log)
	if err != nil {
		t.Fatalf("scripting.NewEngine: %v", err)
	}
	t.Cleanup(scripts.Close)
	return offline.New(lib, db, scripts, opts, log)
}

func run(t *testing.T, a *Autopilot, ticks int) {
	t.Helper()
	a.Start()
	for i := 0; i < ticks; i++ {
		a.Tick()
		if a.Stage() == StageInWorld || a.Stage() == StageFailed {
			return
		}
	}
}

func testConfig() Config {
	return Config{
		Version:       gameplay.Version20220406,
		LoginAddress:  "offline",
		Username:      "pilot_F",
		Password:      "secret",
		CharacterSlot: 2,
		CharacterName: "Pilot",
	}
}

func TestAutopilotCreatesCharacterAndEntersWorld(t *testing.T) {
	p := newOffline(t, filepath.Join(t.TempDir(), "pilot.db"), offline.Options{})
	a := New(p, testConfig(), zaptest.NewLogger(t))

	var created bool
	a.OnEvent = func(ev gameplay.Event) {
		if c, ok := ev.(gameplay.CharacterCreated); ok {
			created = c.Character.Name == "Pilot" && c.Character.Slot == 2
		}
	}
	run(t, a, 10)

	if a.Stage() != StageInWorld {
		t.Fatalf("stage = %s (err %v), want InWorld", a.Stage(), a.Err())
	}
	if !created {
		t.Fatal("character was not created in slot 2")
	}
	if a.MapName() != "prontera" {
		t.Fatalf("map = %q, want prontera", a.MapName())
	}
	if a.Position() != (gameplay.TilePosition{X: 155, Y: 185}) {
		t.Fatalf("position = %+v", a.Position())
	}
	if p.IsLoginServerConnected() {
		t.Fatal("login server still connected after character server took over")
	}
	if !p.IsMapServerConnected() {
		t.Fatal("map server not connected")
	}

	a.Stop()
	if p.IsMapServerConnected() || p.IsCharacterServerConnected() {
		t.Fatal("connections left open after Stop")
	}
}

func TestAutopilotReusesExistingCharacter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pilot.db")

	first := New(newOffline(t, dbPath, offline.Options{}), testConfig(), zaptest.NewLogger(t))
	run(t, first, 10)
	if first.Stage() != StageInWorld {
		t.Fatalf("first run: stage = %s (err %v)", first.Stage(), first.Err())
	}
	first.Stop()

	cfg := testConfig()
	cfg.CharacterName = ""
	second := New(newOffline(t, dbPath, offline.Options{}), cfg, zaptest.NewLogger(t))
	run(t, second, 10)
	if second.Stage() != StageInWorld {
		t.Fatalf("second run: stage = %s (err %v)", second.Stage(), second.Err())
	}
}

func TestAutopilotLoginRefused(t *testing.T) {
	p := newOffline(t, filepath.Join(t.TempDir(), "pilot.db"), offline.Options{})
	cfg := testConfig()
	cfg.Username = "nobody"
	a := New(p, cfg, zaptest.NewLogger(t))
	run(t, a, 5)

	if a.Stage() != StageFailed {
		t.Fatalf("stage = %s, want Failed", a.Stage())
	}
	if a.Err() == nil || !strings.Contains(a.Err().Error(), "login refused") {
		t.Fatalf("err = %v", a.Err())
	}
}

func TestAutopilotEmptySlotWithoutName(t *testing.T) {
	p := newOffline(t, filepath.Join(t.TempDir(), "pilot.db"), offline.Options{})
	cfg := testConfig()
	cfg.CharacterName = ""
	a := New(p, cfg, zaptest.NewLogger(t))
	run(t, a, 5)

	if a.Stage() != StageFailed {
		t.Fatalf("stage = %s, want Failed", a.Stage())
	}
	if !strings.Contains(a.Err().Error(), "no character in slot 2") {
		t.Fatalf("err = %v", a.Err())
	}
}

func TestStageString(t *testing.T) {
	if StageInWorld.String() != "InWorld" {
		t.Fatalf("got %q", StageInWorld.String())
	}
	if Stage(42).String() != "Stage(42)" {
		t.Fatalf("got %q", Stage(42).String())
	}
}
