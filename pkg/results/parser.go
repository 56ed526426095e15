package results

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"mime"

	"github.com/pkg/errors"
)

// Result media types
const (
	MIMEJSON = "application/sparql-results+json"
	MIMEXML  = "application/sparql-results+xml"
)

var ErrUnsupportedFormat = errors.New("unsupported result format")

// Parser turns a raw read response into binding rows
type Parser interface {
	Parse(contentType string, body []byte) (*Result, error)
}

// SPARQLParser parses the SPARQL 1.1 JSON and XML result formats
type SPARQLParser struct{}

// NewParser returns the default results parser
func NewParser() *SPARQLParser {
	return &SPARQLParser{}
}

// Parse picks the decoder from the content type, sniffing the body when the
// content type is missing or generic
func (p *SPARQLParser) Parse(contentType string, body []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Result{}, nil
	}

	switch format(contentType, trimmed) {
	case MIMEJSON:
		return parseJSON(trimmed)
	case MIMEXML:
		return parseXML(trimmed)
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "content type %q", contentType)
}

func format(contentType string, body []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch mediaType {
		case MIMEJSON, "application/json":
			return MIMEJSON
		case MIMEXML, "application/xml", "text/xml":
			return MIMEXML
		}
	}

	switch body[0] {
	case '{':
		return MIMEJSON
	case '<':
		return MIMEXML
	}
	return ""
}

type jsonDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

func parseJSON(body []byte) (*Result, error) {
	var doc jsonDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, "decode sparql json results")
	}

	res := &Result{Vars: doc.Head.Vars, Boolean: doc.Boolean}
	if doc.Results != nil {
		res.Bindings = doc.Results.Bindings
	}
	return res, nil
}

type xmlDocument struct {
	XMLName xml.Name `xml:"sparql"`
	Head    struct {
		Variables []struct {
			Name string `xml:"name,attr"`
		} `xml:"variable"`
	} `xml:"head"`
	Results []xmlResult `xml:"results>result"`
	Boolean *bool       `xml:"boolean"`
}

type xmlResult struct {
	Bindings []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     *string     `xml:"uri"`
	BNode   *string     `xml:"bnode"`
	Literal *xmlLiteral `xml:"literal"`
}

type xmlLiteral struct {
	Value    string `xml:",chardata"`
	Datatype string `xml:"datatype,attr"`
	Lang     string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
}

func parseXML(body []byte) (*Result, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, "decode sparql xml results")
	}

	res := &Result{Boolean: doc.Boolean}
	for _, v := range doc.Head.Variables {
		res.Vars = append(res.Vars, v.Name)
	}

	for _, r := range doc.Results {
		row := make(Binding, len(r.Bindings))
		for _, b := range r.Bindings {
			switch {
			case b.URI != nil:
				row[b.Name] = Term{Type: TypeURI, Value: *b.URI}
			case b.BNode != nil:
				row[b.Name] = Term{Type: TypeBNode, Value: *b.BNode}
			case b.Literal != nil:
				term := Term{Type: TypeLiteral, Value: b.Literal.Value, Lang: b.Literal.Lang}
				if b.Literal.Datatype != "" {
					term.Type = TypeTypedLiteral
					term.Datatype = b.Literal.Datatype
				}
				row[b.Name] = term
			default:
				return nil, errors.Errorf("binding %q has no term", b.Name)
			}
		}
		res.Bindings = append(res.Bindings, row)
	}
	return res, nil
}
