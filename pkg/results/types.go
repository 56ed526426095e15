package results

// Term types as they appear in SPARQL result documents.
// Virtuoso also emits "typed-literal" in its JSON output.
const (
	TypeURI          = "uri"
	TypeLiteral      = "literal"
	TypeTypedLiteral = "typed-literal"
	TypeBNode        = "bnode"
)

// Term is one RDF term bound to a variable
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// IsIRI reports whether the term is an IRI
func (t Term) IsIRI() bool {
	return t.Type == TypeURI
}

// IsLiteral reports whether the term is a plain, language-tagged or typed literal
func (t Term) IsLiteral() bool {
	return t.Type == TypeLiteral || t.Type == TypeTypedLiteral
}

// IsBlank reports whether the term is a blank node
func (t Term) IsBlank() bool {
	return t.Type == TypeBNode
}

// Binding is one solution row, keyed by variable name
type Binding map[string]Term

// Result is a parsed SPARQL result document.
// Boolean is set only for ASK results.
type Result struct {
	Vars     []string  `json:"vars"`
	Bindings []Binding `json:"bindings"`
	Boolean  *bool     `json:"boolean,omitempty"`
}

// Values flattens each binding row to variable -> lexical value
func (r *Result) Values() []map[string]string {
	rows := make([]map[string]string, 0, len(r.Bindings))
	for _, b := range r.Bindings {
		row := make(map[string]string, len(b))
		for name, term := range b {
			row[name] = term.Value
		}
		rows = append(rows, row)
	}
	return rows
}
