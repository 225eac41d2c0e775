package scheme

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadLua evaluates a scheme script in a sandboxed interpreter.
//
// The script declares bindings through three globals:
//
//	name("editor")
//	bind("Mod+S", "save", { require_reset = true })
//	sequence({ "Ctrl+K", "Ctrl+C" }, "comment", { timeout_ms = 500 })
//
// Binding option keys are require_reset, prevent_default,
// stop_propagation, on_release, enabled, and description. Sequence option
// keys are timeout_ms and description.
func LoadLua(path string) (*Scheme, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)
	s := &Scheme{}
	installSchemeGlobals(L, s)

	if err := doFileWithRecovery(L, path); err != nil {
		return nil, fmt.Errorf("evaluating scheme script %s: %w", path, err)
	}
	return s, nil
}

// openSafeLibraries opens only side-effect-free Lua standard libraries.
// io, os, debug, and package stay closed, and the file loaders that
// OpenBase brings along are removed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func installSchemeGlobals(L *lua.LState, s *Scheme) {
	L.SetGlobal("name", L.NewFunction(func(L *lua.LState) int {
		s.Name = L.CheckString(1)
		return 0
	}))

	L.SetGlobal("bind", L.NewFunction(func(L *lua.LState) int {
		b := Binding{
			Keys:    L.CheckString(1),
			Action:  L.CheckString(2),
			Enabled: true,
		}
		if L.GetTop() >= 3 {
			applyBindingOpts(L.CheckTable(3), &b)
		}
		s.Bindings = append(s.Bindings, b)
		return 0
	}))

	L.SetGlobal("sequence", L.NewFunction(func(L *lua.LState) int {
		steps := L.CheckTable(1)
		sb := SequenceBinding{Action: L.CheckString(2)}
		for i := 1; i <= steps.Len(); i++ {
			sb.Steps = append(sb.Steps, lua.LVAsString(steps.RawGetInt(i)))
		}
		if len(sb.Steps) == 0 {
			L.RaiseError("sequence needs at least one step")
		}
		if L.GetTop() >= 3 {
			applySequenceOpts(L.CheckTable(3), &sb)
		}
		s.Sequences = append(s.Sequences, sb)
		return 0
	}))
}

func applyBindingOpts(t *lua.LTable, b *Binding) {
	b.RequireReset = lua.LVAsBool(t.RawGetString("require_reset"))
	b.PreventDefault = lua.LVAsBool(t.RawGetString("prevent_default"))
	b.StopPropagation = lua.LVAsBool(t.RawGetString("stop_propagation"))
	b.OnRelease = lua.LVAsBool(t.RawGetString("on_release"))
	if v := t.RawGetString("enabled"); v != lua.LNil {
		b.Enabled = lua.LVAsBool(v)
	}
	if v := t.RawGetString("description"); v != lua.LNil {
		b.Description = lua.LVAsString(v)
	}
}

func applySequenceOpts(t *lua.LTable, sb *SequenceBinding) {
	if n, ok := t.RawGetString("timeout_ms").(lua.LNumber); ok {
		sb.TimeoutMS = int(n)
	}
	if v := t.RawGetString("description"); v != lua.LNil {
		sb.Description = lua.LVAsString(v)
	}
}

// doFileWithRecovery executes a script with panic recovery. gopher-lua
// raises script errors through panics in some paths; a scheme file must
// never take the host down.
func doFileWithRecovery(L *lua.LState, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return L.DoFile(path)
}
