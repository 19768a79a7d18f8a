package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Predeclared returns the globals available to every script:
//
//	struct(**kwargs)  builds a struct value
//	title(s)          title-cases s
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		"title":  starlark.NewBuiltin("title", title),
	}
}

func title(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	return starlark.String(cases.Title(language.English).String(s)), nil
}

// GoToStarlark converts a resolved parameter to a Starlark value.
// Objects become structs with id, name, words, location and description.
func GoToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case float64:
		return starlark.Float(val), nil

	case bool:
		return starlark.Bool(val), nil

	case []string:
		return stringList(val), nil

	case *world.Object:
		return starlarkstruct.FromStringDict(starlark.String("object"), starlark.StringDict{
			"id":          starlark.String(val.ID),
			"name":        starlark.String(val.Name),
			"words":       stringList(val.Words()),
			"location":    starlark.String(val.Location),
			"description": starlark.String(val.Description),
			"carried":     starlark.Bool(val.Carried()),
		}), nil

	case world.Entity:
		return starlarkstruct.FromStringDict(starlark.String("entity"), starlark.StringDict{
			"words": stringList(val.Words()),
		}), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func stringList(ss []string) *starlark.List {
	list := make([]starlark.Value, len(ss))
	for i, s := range ss {
		list[i] = starlark.String(s)
	}
	return starlark.NewList(list)
}

// ToOutput renders a script's return value as action output. Strings are
// taken verbatim and None yields no output.
func ToOutput(v starlark.Value) string {
	switch val := v.(type) {
	case starlark.NoneType:
		return ""
	case starlark.String:
		return string(val)
	default:
		return val.String()
	}
}
