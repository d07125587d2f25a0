package output

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PreviewWidth bounds the width of one-line value previews.
const PreviewWidth = 30

// MaxDepth bounds how deeply nested maps and slices are expanded.
const MaxDepth = 32

// Placeholders for collections that are not expanded.
const (
	CyclePlaceholder    = "<cycle>"
	MaxDepthPlaceholder = "<max depth>"
)

// formatValue renders value the way a REPL would echo it: strings quoted,
// maps and slices expanded one entry per line with nested indentation.
// A collection that contains itself is shown as CyclePlaceholder.
func (c *Console) formatValue(value any, depth int) string {
	return c.format(value, depth, map[uintptr]bool{})
}

func (c *Console) format(value any, depth int, path map[uintptr]bool) string {
	indent := strings.Repeat("  ", depth)

	if value == nil {
		return c.styles.keyword.Render("null")
	}

	switch v := value.(type) {
	case string:
		return c.styles.str.Render(strconv.Quote(v))
	case bool:
		return c.styles.keyword.Render(strconv.FormatBool(v))
	case error:
		return c.styles.danger.Render(v.Error())
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return c.styles.num.Render(fmt.Sprint(value))

	case reflect.Map:
		if rv.Len() == 0 {
			return "{}"
		}
		if done, placeholder := enter(rv, depth, path); done {
			return c.styles.keyword.Render(placeholder)
		}
		defer delete(path, rv.Pointer())
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		items := make([]string, 0, len(keys))
		for _, k := range keys {
			key := c.styles.key.Render(strconv.Quote(fmt.Sprint(k.Interface())))
			items = append(items, indent+"  "+key+" => "+c.format(rv.MapIndex(k).Interface(), depth+1, path))
		}
		return "{\n" + strings.Join(items, ",\n") + "\n" + indent + "}"

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "[]"
		}
		if rv.Kind() == reflect.Slice {
			if done, placeholder := enter(rv, depth, path); done {
				return c.styles.keyword.Render(placeholder)
			}
			defer delete(path, rv.Pointer())
		} else if depth >= MaxDepth {
			return c.styles.keyword.Render(MaxDepthPlaceholder)
		}
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			key := c.styles.num.Render(strconv.Itoa(i))
			items = append(items, indent+"  "+key+" => "+c.format(rv.Index(i).Interface(), depth+1, path))
		}
		return "[\n" + strings.Join(items, ",\n") + "\n" + indent + "]"

	case reflect.Pointer:
		if rv.IsNil() {
			return c.styles.keyword.Render("null")
		}
		if done, placeholder := enter(rv, depth, path); done {
			return c.styles.keyword.Render(placeholder)
		}
		defer delete(path, rv.Pointer())
		return c.format(rv.Elem().Interface(), depth, path)

	case reflect.Struct:
		return fmt.Sprintf("%s %+v", c.styles.label.Render(rv.Type().String()), value)
	}

	return fmt.Sprintf("%v", value)
}

// enter records rv on the current path. It reports true with a placeholder
// when rv is already on the path or the path is too deep.
func enter(rv reflect.Value, depth int, path map[uintptr]bool) (bool, string) {
	ptr := rv.Pointer()
	if path[ptr] {
		return true, CyclePlaceholder
	}
	if depth >= MaxDepth {
		return true, MaxDepthPlaceholder
	}
	path[ptr] = true
	return false, ""
}

// TypeName describes value for variable listings: "string", "int", "map", "[]any".
func TypeName(value any) string {
	if value == nil {
		return "null"
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		return "map"
	case reflect.Slice, reflect.Array:
		return "list"
	}
	return rv.Type().String()
}

// Preview summarises value on one line: quoted strings are cut at
// PreviewWidth, collections show their size.
func Preview(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		if ansi.StringWidth(v) > PreviewWidth {
			return strconv.Quote(ansi.Truncate(v, PreviewWidth, "") + "...")
		}
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Struct, reflect.Pointer:
		return rv.Type().String() + " object"
	}
	return fmt.Sprint(value)
}
