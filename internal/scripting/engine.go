package scripting

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtin embed.FS

// ErrNoDialog is returned by Talk for NPCs without a registered dialog.
var ErrNoDialog = errors.New("npc has no dialog")

// Button is how a dialog page ends.
type Button uint8

const (
	ButtonClose Button = iota
	ButtonNext
	ButtonMenu
)

// Page is one step of an NPC conversation as returned by a script.
type Page struct {
	// Text may be empty when a page only offers buttons or opens a shop.
	Text   string
	Button Button
	// Menu is the raw ':'-separated choice list of a ButtonMenu page.
	Menu string
	// Shop asks the client to open the NPC's buy/sell window.
	Shop bool
	// End finishes the conversation without another page.
	End bool
}

// Engine wraps a gopher-lua VM holding the NPC dialog scripts.
// Calls are serialized; the VM itself is not goroutine safe.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger

	dialogs map[uint32]*lua.LFunction
}

// NewEngine loads the built-in scripts and then every .lua file in
// scriptsDir, so local files can replace built-in dialogs. An empty
// scriptsDir loads only the built-ins.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, dialogs: make(map[uint32]*lua.LFunction)}
	vm.SetGlobal("register_dialog", vm.NewFunction(e.registerDialog))

	if err := e.loadFS(builtin, "scripts"); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load builtin scripts: %w", err)
	}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// registerDialog is exposed to Lua as register_dialog(npc_id, fn).
func (e *Engine) registerDialog(L *lua.LState) int {
	id := uint32(L.CheckNumber(1))
	fn := L.CheckFunction(2)
	e.dialogs[id] = fn
	return 0
}

func (e *Engine) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		name := dir + "/" + entry.Name()
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", name))
	}
	return nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasDialog reports whether a script registered a dialog for npc.
func (e *Engine) HasDialog(npc uint32) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.dialogs[npc]
	return ok
}

// Talk runs the dialog function of npc for the given step. choice is the
// 1-based menu selection of the previous page, or 0.
func (e *Engine) Talk(npc uint32, step, choice int) (Page, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, ok := e.dialogs[npc]
	if !ok {
		return Page{}, ErrNoDialog
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(step), lua.LNumber(choice)); err != nil {
		e.log.Error("lua dialog error", zap.Uint32("npc", npc), zap.Error(err))
		return Page{}, fmt.Errorf("dialog %d: %w", npc, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return Page{End: true}, nil
	}
	page := Page{
		Text: lua.LVAsString(rt.RawGetString("text")),
		Menu: lua.LVAsString(rt.RawGetString("menu")),
		Shop: lua.LVAsBool(rt.RawGetString("shop")),
	}
	switch {
	case page.Menu != "":
		page.Button = ButtonMenu
	case lua.LVAsBool(rt.RawGetString("next")):
		page.Button = ButtonNext
	default:
		page.Button = ButtonClose
	}
	return page, nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
