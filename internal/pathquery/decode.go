package pathquery

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Format selects a decoder.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "xml" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown query format %q (want xml or json)", s)
}

// Decode decodes data in the given format and normalizes the result. An
// empty format sniffs the first non-blank byte.
func Decode(data []byte, format Format) (*Query, error) {
	if format == "" {
		format = FormatXML
		if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
			format = FormatJSON
		}
	}
	switch format {
	case FormatXML:
		return DecodeXML(data)
	case FormatJSON:
		return DecodeJSON(data)
	}
	return nil, fmt.Errorf("unknown query format %q", format)
}

type xmlQuery struct {
	XMLName     xml.Name        `xml:"query"`
	Name        string          `xml:"name,attr"`
	Model       string          `xml:"model,attr"`
	View        string          `xml:"view,attr"`
	SortOrder   string          `xml:"sortOrder,attr"`
	Logic       string          `xml:"constraintLogic,attr"`
	Joins       []xmlJoin       `xml:"join"`
	Constraints []xmlConstraint `xml:"constraint"`
}

type xmlJoin struct {
	Path  string `xml:"path,attr"`
	Style string `xml:"style,attr"`
}

type xmlConstraint struct {
	Path       string  `xml:"path,attr"`
	Op         string  `xml:"op,attr"`
	Value      string  `xml:"value,attr"`
	ExtraValue *string `xml:"extraValue,attr"`
	Code       string  `xml:"code,attr"`
	Type       string  `xml:"type,attr"`
}

// DecodeXML decodes a query in the PathQuery XML format:
//
//	<query model="genomic" view="Gene.symbol Gene.organism.name"
//	       sortOrder="Gene.symbol asc" constraintLogic="A and B">
//	  <join path="Gene.proteins" style="OUTER"/>
//	  <constraint path="Gene.organism.name" op="=" value="Drosophila" code="A"/>
//	  <constraint path="Gene.chromosome" type="Chromosome"/>
//	</query>
func DecodeXML(data []byte) (*Query, error) {
	var raw xmlQuery
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, qerr.New(qerr.CodeInvalidQuery, "", "malformed query XML: %v", err)
	}

	q := &Query{
		Name:  raw.Name,
		Model: raw.Model,
		Views: strings.FieldsFunc(raw.View, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' }),
		Logic: raw.Logic,
	}
	for _, j := range raw.Joins {
		q.Joins = append(q.Joins, Join{Path: strings.TrimSpace(j.Path), Outer: strings.EqualFold(j.Style, "OUTER")})
	}
	for _, c := range raw.Constraints {
		q.Constraints = append(q.Constraints, Constraint(c))
	}

	sort, err := parseSortOrder(raw.SortOrder)
	if err != nil {
		return nil, err
	}
	q.SortOrder = sort

	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return q, nil
}

// parseSortOrder reads "path [asc|desc] path [asc|desc] ...".
func parseSortOrder(s string) ([]Sort, error) {
	var out []Sort
	for _, f := range strings.Fields(s) {
		switch strings.ToLower(f) {
		case "asc", "desc":
			if len(out) == 0 {
				return nil, qerr.New(qerr.CodeInvalidQuery, "", "sort direction %q without a path", f).WithValue(s)
			}
			out[len(out)-1].Descending = strings.EqualFold(f, "desc")
		default:
			out = append(out, Sort{Path: f})
		}
	}
	return out, nil
}

type jsonQuery struct {
	Name        string           `json:"name"`
	Model       string           `json:"model"`
	View        []string         `json:"view"`
	Logic       string           `json:"constraintLogic"`
	Constraints []jsonConstraint `json:"constraints"`
	SortOrder   []jsonSort       `json:"sortOrder"`
	Joins       []jsonJoin       `json:"joins"`
}

type jsonConstraint struct {
	Path       string  `json:"path"`
	Op         string  `json:"op"`
	Value      string  `json:"value"`
	ExtraValue *string `json:"extraValue"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`
}

type jsonSort struct {
	Path      string `json:"path"`
	Direction string `json:"direction"`
}

type jsonJoin struct {
	Path  string `json:"path"`
	Style string `json:"style"`
}

// DecodeJSON decodes the JSON rendition of a query:
//
//	{"view": ["Gene.symbol"],
//	 "constraints": [{"path": "Gene.organism.name", "op": "=", "value": "Drosophila"}],
//	 "constraintLogic": "A",
//	 "sortOrder": [{"path": "Gene.symbol", "direction": "desc"}],
//	 "joins": [{"path": "Gene.proteins", "style": "OUTER"}]}
func DecodeJSON(data []byte) (*Query, error) {
	var raw jsonQuery
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, qerr.New(qerr.CodeInvalidQuery, "", "malformed query JSON: %v", err)
	}

	q := &Query{Name: raw.Name, Model: raw.Model, Views: raw.View, Logic: raw.Logic}
	for _, c := range raw.Constraints {
		q.Constraints = append(q.Constraints, Constraint(c))
	}
	for _, s := range raw.SortOrder {
		switch strings.ToLower(s.Direction) {
		case "", "asc":
			q.SortOrder = append(q.SortOrder, Sort{Path: s.Path})
		case "desc":
			q.SortOrder = append(q.SortOrder, Sort{Path: s.Path, Descending: true})
		default:
			return nil, qerr.New(qerr.CodeInvalidQuery, s.Path, "unknown sort direction %q", s.Direction).WithValue(s.Direction)
		}
	}
	for _, j := range raw.Joins {
		q.Joins = append(q.Joins, Join{Path: j.Path, Outer: strings.EqualFold(j.Style, "OUTER")})
	}

	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return q, nil
}
