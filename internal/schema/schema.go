package schema

// CollectionMode describes how a collection-valued parameter is rendered
// into the provider's positional calling convention.
type CollectionMode string

const (
	// CollectNone marks a scalar parameter.
	CollectNone CollectionMode = "none"

	// CollectJoin renders the collection as a single comma-separated string
	// argument (the convention for email forwarding targets).
	CollectJoin CollectionMode = "join"

	// CollectList passes the collection through as one array argument.
	CollectList CollectionMode = "list"

	// CollectSpread expands each element into its own trailing positional
	// slot (the convention for subdomain arguments).
	CollectSpread CollectionMode = "spread"
)

// Kind is the value kind a parameter accepts.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
)

// GuardMode states the precondition an existence guard enforces.
type GuardMode string

const (
	// GuardAbsent requires the target entity to not appear in the inventory
	// (create operations).
	GuardAbsent GuardMode = "absent"

	// GuardExists requires the target entity to appear in the inventory
	// (delete, update and password operations).
	GuardExists GuardMode = "exists"
)

// Param is one ordered parameter of a remote operation.
type Param struct {
	Name       string         `json:"name"`
	Kind       Kind           `json:"kind"`
	Collection CollectionMode `json:"collection"`
	Required   bool           `json:"required"`

	// Default is substituted when the keyword map omits the parameter.
	// Nil means the kind's zero value ("" / false / empty list).
	Default any `json:"default,omitempty"`
}

// Guard configures the client-side existence check for an operation.
type Guard struct {
	// Mode is the precondition: absent before create, exists before
	// delete/update.
	Mode GuardMode `json:"mode"`

	// List is the inventory operation queried for the snapshot.
	List string `json:"list"`

	// Field is the snapshot entry field compared against the target.
	Field string `json:"field"`

	// Param names the operation parameter supplying the target value.
	Param string `json:"param"`
}

// Operation is one remote operation's calling convention.
type Operation struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
	Guard  *Guard  `json:"guard,omitempty"`
}

// Guarded reports whether the operation carries an existence guard.
func (o Operation) Guarded() bool { return o.Guard != nil }

// ParamNames returns the parameter names in calling order.
func (o Operation) ParamNames() []string {
	names := make([]string, len(o.Params))
	for i, p := range o.Params {
		names[i] = p.Name
	}
	return names
}
