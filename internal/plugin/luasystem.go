package plugin

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stenoterm/internal/steno"
)

// Lua globals a system definition file must or may declare.
//
//	NAME = "my-system"
//	KEYS = { "#", "S-", ... }
//	NUMBERS = { ["S-"] = "1-", ... }          -- optional
//	NUMERIC_INDICATOR = "#"                   -- optional
const (
	luaGlobalName      = "NAME"
	luaGlobalKeys      = "KEYS"
	luaGlobalNumbers   = "NUMBERS"
	luaGlobalIndicator = "NUMERIC_INDICATOR"
)

// LoadSystemLua evaluates a Lua system definition file and returns the
// validated system. The interpreter is sandboxed: only the base, table,
// string, and math libraries are opened. io, os, debug, and package stay
// closed; layout files are data, not programs.
func LoadSystemLua(path string) (*steno.System, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("plugin: evaluating system definition %s: %w", path, err)
	}
	sys, err := systemFromGlobals(L)
	if err != nil {
		return nil, fmt.Errorf("plugin: system definition %s: %w", path, err)
	}
	return sys, nil
}

// LoadSystemLuaString is LoadSystemLua for in-memory source.
func LoadSystemLuaString(src string) (*steno.System, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("plugin: evaluating system definition: %w", err)
	}
	return systemFromGlobals(L)
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func systemFromGlobals(L *lua.LState) (*steno.System, error) {
	name, ok := L.GetGlobal(luaGlobalName).(lua.LString)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: NAME must be a non-empty string", ErrInvalidManifest)
	}

	keysTable, ok := L.GetGlobal(luaGlobalKeys).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: KEYS must be a table", ErrInvalidManifest)
	}
	keys := make([]string, 0, keysTable.Len())
	for i := 1; i <= keysTable.Len(); i++ {
		key, ok := keysTable.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: KEYS[%d] must be a string", ErrInvalidManifest, i)
		}
		keys = append(keys, string(key))
	}

	numbers := make(map[string]string)
	switch nt := L.GetGlobal(luaGlobalNumbers).(type) {
	case *lua.LTable:
		var convErr error
		nt.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			vs, vok := v.(lua.LString)
			if !kok || !vok {
				convErr = fmt.Errorf("%w: NUMBERS entries must be string=string", ErrInvalidManifest)
				return
			}
			numbers[string(ks)] = string(vs)
		})
		if convErr != nil {
			return nil, convErr
		}
	case *lua.LNilType:
	default:
		return nil, fmt.Errorf("%w: NUMBERS must be a table", ErrInvalidManifest)
	}

	indicator := ""
	if v, ok := L.GetGlobal(luaGlobalIndicator).(lua.LString); ok {
		indicator = string(v)
	}

	sys := &steno.System{
		Name:             string(name),
		Keys:             keys,
		Numbers:          numbers,
		NumericIndicator: indicator,
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}
