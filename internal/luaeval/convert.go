package luaeval

import (
	"fmt"
	"math"
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// MaxDepth bounds how deeply nested tables, maps and slices are converted.
const MaxDepth = 32

// Placeholders for values that are not converted.
const (
	CyclePlaceholder    = "<cycle>"
	MaxDepthPlaceholder = "<max depth>"
)

// luaToGo converts a Lua value to plain Go data. Integral numbers become
// int64, tables with only positive integer keys become []any, other tables
// become map[string]any. Functions and userdata become their string form.
// A table that contains itself converts to CyclePlaceholder at the repeat.
func luaToGo(val lua.LValue) any {
	return (&fromLua{path: map[*lua.LTable]bool{}}).value(val, 0)
}

type fromLua struct {
	path map[*lua.LTable]bool
}

func (c *fromLua) value(val lua.LValue, depth int) any {
	switch v := val.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return c.table(v, depth)
	case *lua.LNilType:
		return nil
	default:
		return val.String()
	}
}

func (c *fromLua) table(t *lua.LTable, depth int) any {
	if c.path[t] {
		return CyclePlaceholder
	}
	if depth >= MaxDepth {
		return MaxDepthPlaceholder
	}
	c.path[t] = true
	defer delete(c.path, t)

	isArray := true
	maxIndex := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		num, ok := k.(lua.LNumber)
		if !ok || float64(num) != math.Trunc(float64(num)) || num < 1 {
			isArray = false
			return
		}
		if int(num) > maxIndex {
			maxIndex = int(num)
		}
	})

	if isArray && maxIndex > 0 && maxIndex == count {
		arr := make([]any, maxIndex)
		t.ForEach(func(k, v lua.LValue) {
			arr[int(k.(lua.LNumber))-1] = c.value(v, depth+1)
		})
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = c.value(v, depth+1)
	})
	return m
}

// goToLua converts Go data to a Lua value. Maps and slices of any element
// type become tables; anything unknown is passed as its string form.
// Self-referencing maps and slices stop at CyclePlaceholder.
func goToLua(L *lua.LState, val any) lua.LValue {
	return (&toLua{L: L, path: map[uintptr]bool{}}).value(val, 0)
}

type toLua struct {
	L    *lua.LState
	path map[uintptr]bool
}

func (c *toLua) value(val any, depth int) lua.LValue {
	switch v := val.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32:
		return lua.LNumber(rv.Float())
	case reflect.Slice, reflect.Array, reflect.Map:
		return c.collection(rv, depth)
	}
	return lua.LString(fmt.Sprint(val))
}

func (c *toLua) collection(rv reflect.Value, depth int) lua.LValue {
	var ptr uintptr
	if rv.Kind() != reflect.Array && rv.Len() > 0 {
		ptr = rv.Pointer()
	}
	if ptr != 0 && c.path[ptr] {
		return lua.LString(CyclePlaceholder)
	}
	if depth >= MaxDepth {
		return lua.LString(MaxDepthPlaceholder)
	}
	if ptr != 0 {
		c.path[ptr] = true
		defer delete(c.path, ptr)
	}

	tbl := c.L.NewTable()
	if rv.Kind() == reflect.Map {
		iter := rv.MapRange()
		for iter.Next() {
			tbl.RawSetString(fmt.Sprint(iter.Key().Interface()), c.value(iter.Value().Interface(), depth+1))
		}
		return tbl
	}
	for i := 0; i < rv.Len(); i++ {
		tbl.RawSetInt(i+1, c.value(rv.Index(i).Interface(), depth+1))
	}
	return tbl
}
