package schema

import (
	"fmt"
	"strings"
)

// Args is a keyword-argument map for one operation call.
type Args map[string]any

// Normalize translates a keyword-argument map into the exact positional
// argument sequence the provider expects for op, per the catalog.
//
// Pure transformation: no side effects, no remote calls. Fails with a
// *SchemaError when the operation is unknown, a required keyword is missing,
// an unknown keyword is supplied, or a value has the wrong kind.
func (c *Catalog) Normalize(op string, kw Args) ([]any, error) {
	spec, ok := c.Lookup(op)
	if !ok {
		return nil, newUnknownOperation(op)
	}
	return spec.Normalize(kw)
}

// Normalize builds the positional argument list for one operation.
// Parameters are emitted in catalog order; omitted optional parameters take
// their declared default or the kind's zero value.
func (o Operation) Normalize(kw Args) ([]any, error) {
	declared := make(map[string]bool, len(o.Params))
	for _, p := range o.Params {
		declared[p.Name] = true
	}
	for name := range kw {
		if !declared[name] {
			return nil, newUnknownArgument(o.Name, name)
		}
	}

	args := make([]any, 0, len(o.Params))
	for _, p := range o.Params {
		value, supplied := kw[p.Name]
		if !supplied {
			if p.Required {
				return nil, newMissingArgument(o.Name, p.Name)
			}
			value = p.zero()
		}

		rendered, err := p.render(o.Name, value)
		if err != nil {
			return nil, err
		}
		switch p.Collection {
		case CollectSpread:
			args = append(args, rendered.([]any)...)
		default:
			args = append(args, rendered)
		}
	}
	return args, nil
}

// zero returns the parameter's default, falling back to the kind's zero value.
func (p Param) zero() any {
	if p.Default != nil {
		return p.Default
	}
	switch p.Kind {
	case KindBool:
		return false
	case KindList:
		return []any{}
	default:
		return ""
	}
}

// render coerces one supplied value to the wire shape for its parameter.
func (p Param) render(op string, value any) (any, error) {
	switch p.Collection {
	case CollectJoin:
		items, err := toStrings(op, p.Name, value)
		if err != nil {
			return nil, err
		}
		return strings.Join(items, ", "), nil

	case CollectList, CollectSpread:
		items, err := toList(op, p.Name, value)
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	switch p.Kind {
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, newBadArgument(op, p.Name, fmt.Sprintf("want bool, got %T", value))
		}
		return b, nil
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, newBadArgument(op, p.Name, fmt.Sprintf("want string, got %T", value))
		}
		return s, nil
	default:
		return value, nil
	}
}

// toList accepts any slice-shaped value and returns it as []any.
func toList(op, param string, value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case [][]string:
		// Nested pairs, e.g. website (app, path) mounts or file change pairs.
		out := make([]any, len(v))
		for i, pair := range v {
			inner := make([]any, len(pair))
			for j, s := range pair {
				inner[j] = s
			}
			out[i] = inner
		}
		return out, nil
	default:
		return nil, newBadArgument(op, param, fmt.Sprintf("want a list, got %T", value))
	}
}

// toStrings accepts a slice of strings in any supported shape.
func toStrings(op, param string, value any) ([]string, error) {
	items, err := toList(op, param, value)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, newBadArgument(op, param, fmt.Sprintf("want list of strings, element %d is %T", i, item))
		}
		out[i] = s
	}
	return out, nil
}
