package schema

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed catalog.cue
var catalogCUE []byte

// Catalog is the loaded, validated operation table.
// Immutable after Load; safe for concurrent use.
type Catalog struct {
	ops   map[string]Operation
	order []string
}

// Load compiles the embedded catalog.cue, validates it against the CUE
// schema, and decodes it into an operation table. Cross-references the CUE
// schema cannot express (guard list operations existing, guard params naming
// a real parameter) are checked here.
func Load() (*Catalog, error) {
	ctx := cuecontext.New()

	value := ctx.CompileBytes(catalogCUE, cue.Filename("catalog.cue"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}
	if err := value.Validate(cue.Concrete(false)); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	opsValue := value.LookupPath(cue.ParsePath("operations"))
	if err := opsValue.Err(); err != nil {
		return nil, fmt.Errorf("catalog has no operations list: %w", err)
	}

	var decoded []Operation
	if err := opsValue.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding operations: %w", err)
	}

	cat := &Catalog{ops: make(map[string]Operation, len(decoded))}
	for _, op := range decoded {
		if _, dup := cat.ops[op.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate operation %q", op.Name)
		}
		cat.ops[op.Name] = op
		cat.order = append(cat.order, op.Name)
	}

	for _, op := range decoded {
		if err := cat.checkGuard(op); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// MustLoad is Load for process start paths where a broken embedded catalog
// is unrecoverable.
func MustLoad() *Catalog {
	cat, err := Load()
	if err != nil {
		panic(err)
	}
	return cat
}

// checkGuard verifies a guard's cross-references within the catalog.
func (c *Catalog) checkGuard(op Operation) error {
	g := op.Guard
	if g == nil {
		return nil
	}
	listOp, ok := c.ops[g.List]
	if !ok {
		return fmt.Errorf("catalog: %s guard references unknown inventory operation %q", op.Name, g.List)
	}
	if len(listOp.Params) != 0 {
		return fmt.Errorf("catalog: %s guard inventory operation %q takes arguments", op.Name, g.List)
	}
	for _, p := range op.Params {
		if p.Name == g.Param {
			if p.Collection != CollectNone {
				return fmt.Errorf("catalog: %s guard param %q is a collection", op.Name, g.Param)
			}
			return nil
		}
	}
	return fmt.Errorf("catalog: %s guard names unknown param %q", op.Name, g.Param)
}

// Lookup returns the operation for name.
func (c *Catalog) Lookup(name string) (Operation, bool) {
	op, ok := c.ops[name]
	return op, ok
}

// Operations returns all operations in catalog order.
func (c *Catalog) Operations() []Operation {
	out := make([]Operation, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.ops[name])
	}
	return out
}

// Len returns the number of operations in the catalog.
func (c *Catalog) Len() int { return len(c.order) }
