package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

const guide = 110000001

func TestBuiltinGuideDialog(t *testing.T) {
	e, err := NewEngine("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if !e.HasDialog(guide) {
		t.Fatalf("guide dialog not registered")
	}

	page, err := e.Talk(guide, 0, 0)
	if err != nil {
		t.Fatalf("Talk step 0: %v", err)
	}
	if page.Button != ButtonNext || page.Text == "" {
		t.Fatalf("step 0 = %+v", page)
	}

	page, err = e.Talk(guide, 1, 0)
	if err != nil {
		t.Fatalf("Talk step 1: %v", err)
	}
	if page.Button != ButtonMenu || page.Menu != "The town:Shops:Nothing" {
		t.Fatalf("step 1 = %+v", page)
	}

	page, err = e.Talk(guide, 2, 2)
	if err != nil {
		t.Fatalf("Talk step 2: %v", err)
	}
	if page.Button != ButtonClose || page.Text != "The tool dealer is right next to the fountain." {
		t.Fatalf("step 2 = %+v", page)
	}

	page, err = e.Talk(guide, 3, 0)
	if err != nil || !page.End {
		t.Fatalf("step 3 = %+v, %v; want end", page, err)
	}
}

func TestShopDialog(t *testing.T) {
	e, err := NewEngine("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	page, err := e.Talk(110000100, 0, 0)
	if err != nil || !page.Shop {
		t.Fatalf("tool dealer = %+v, %v", page, err)
	}
}

func TestUnknownNPC(t *testing.T) {
	e, err := NewEngine("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if _, err := e.Talk(42, 0, 0); !errors.Is(err, ErrNoDialog) {
		t.Fatalf("err = %v, want ErrNoDialog", err)
	}
}

func TestScriptDirOverridesAndErrors(t *testing.T) {
	dir := t.TempDir()
	src := `register_dialog(110000001, function(step, choice) return { text = "overridden" } end)
register_dialog(7, function(step, choice) error("boom") end)`
	if err := os.WriteFile(filepath.Join(dir, "local.lua"), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	e, err := NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	page, err := e.Talk(guide, 0, 0)
	if err != nil || page.Text != "overridden" {
		t.Fatalf("override = %+v, %v", page, err)
	}
	if _, err := e.Talk(7, 0, 0); err == nil || errors.Is(err, ErrNoDialog) {
		t.Fatalf("script error not reported: %v", err)
	}
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("this is not lua"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewEngine(dir, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected load error")
	}
}
