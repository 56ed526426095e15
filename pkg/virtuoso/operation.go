package virtuoso

import (
	"fmt"
	"strings"
)

// Operation is a SPARQL operation kind
type Operation int

// Read operations are sent as GET requests to the read target
const (
	Query Operation = iota
	Select
	Ask
	Construct
	Describe
)

// Write operations are sent as POST requests to the write target
const (
	Insert Operation = iota + Describe + 1
	InsertData
	Update
	Delete
	DeleteData
	Create
	Drop
	Clear
)

var operationNames = [...]string{
	Query:      "query",
	Select:     "select",
	Ask:        "ask",
	Construct:  "construct",
	Describe:   "describe",
	Insert:     "insert",
	InsertData: "insert_data",
	Update:     "update",
	Delete:     "delete",
	DeleteData: "delete_data",
	Create:     "create",
	Drop:       "drop",
	Clear:      "clear",
}

var (
	ReadOperations  = []Operation{Query, Select, Ask, Construct, Describe}
	WriteOperations = []Operation{Insert, InsertData, Update, Delete, DeleteData, Create, Drop, Clear}
)

func (o Operation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

// Valid reports whether o is a known operation
func (o Operation) Valid() bool {
	return o >= Query && o <= Clear
}

// IsRead reports whether o is a query form
func (o Operation) IsRead() bool {
	return o >= Query && o <= Describe
}

// ParseOperation maps an operation name such as "insert_data" to its Operation
func ParseOperation(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range operationNames {
		if n == name {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %q", name)
}

// Params holds extra protocol parameters (e.g. default-graph-uri) merged into a request
type Params map[string]string

// merge returns base overlaid with p; keys in p win
func (p Params) merge(base map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(p))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range p {
		out[k] = v
	}
	return out
}
