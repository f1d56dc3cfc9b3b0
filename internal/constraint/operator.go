package constraint

import (
	"strings"
)

// Family groups operators that share a rendering template.
type Family int

const (
	Equality Family = iota
	Inequality
	Ordering
	Contains
	NotContains
	Null
	NotNull
	BooleanLogic
	Lookup
	Subclass
	Unsupported
)

func (f Family) String() string {
	switch f {
	case Equality:
		return "equality"
	case Inequality:
		return "inequality"
	case Ordering:
		return "ordering"
	case Contains:
		return "contains"
	case NotContains:
		return "not-contains"
	case Null:
		return "null"
	case NotNull:
		return "not-null"
	case BooleanLogic:
		return "boolean-logic"
	case Lookup:
		return "lookup"
	case Subclass:
		return "subclass"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// Operator is a parsed constraint operator.
type Operator struct {
	Family Family

	// Name is the canonical source spelling, e.g. ">=" or "DOES NOT CONTAIN".
	// For unsupported operators it is the name as received, normalized.
	Name string

	// Symbol is the Cypher operator for ordering and boolean-logic families.
	Symbol string
}

// Supported reports whether the operator has a rendering template.
func (o Operator) Supported() bool { return o.Family != Unsupported }

func (o Operator) String() string { return o.Name }

var operators = map[string]Operator{
	"=":                   {Family: Equality, Name: "="},
	"EQUALS":              {Family: Equality, Name: "="},
	"!=":                  {Family: Inequality, Name: "!="},
	"NOT EQUALS":          {Family: Inequality, Name: "!="},
	"<":                   {Family: Ordering, Name: "<", Symbol: "<"},
	"LESS THAN":           {Family: Ordering, Name: "<", Symbol: "<"},
	"<=":                  {Family: Ordering, Name: "<=", Symbol: "<="},
	"LESS THAN EQUALS":    {Family: Ordering, Name: "<=", Symbol: "<="},
	">":                   {Family: Ordering, Name: ">", Symbol: ">"},
	"GREATER THAN":        {Family: Ordering, Name: ">", Symbol: ">"},
	">=":                  {Family: Ordering, Name: ">=", Symbol: ">="},
	"GREATER THAN EQUALS": {Family: Ordering, Name: ">=", Symbol: ">="},
	"CONTAINS":            {Family: Contains, Name: "CONTAINS"},
	"DOES NOT CONTAIN":    {Family: NotContains, Name: "DOES NOT CONTAIN"},
	"IS NULL":             {Family: Null, Name: "IS NULL"},
	"IS EMPTY":            {Family: Null, Name: "IS EMPTY"},
	"IS NOT NULL":         {Family: NotNull, Name: "IS NOT NULL"},
	"IS NOT EMPTY":        {Family: NotNull, Name: "IS NOT EMPTY"},
	"AND":                 {Family: BooleanLogic, Name: "AND", Symbol: "AND"},
	"OR":                  {Family: BooleanLogic, Name: "OR", Symbol: "OR"},
	"NAND":                {Family: BooleanLogic, Name: "NAND", Symbol: "NAND"},
	"NOR":                 {Family: BooleanLogic, Name: "NOR", Symbol: "NOR"},
	"LOOKUP":              {Family: Lookup, Name: "LOOKUP"},
}

// ParseOperator maps a source operator name to its family. It never
// fails: names without a template come back as Unsupported so the
// constraint still yields a marked fragment.
//
// Symbols and enum spellings are both accepted, case-insensitively:
// ">=" and "GREATER_THAN_EQUALS" are the same operator.
func ParseOperator(name string) Operator {
	key := normalize(name)
	if op, ok := operators[key]; ok {
		return op
	}
	return Operator{Family: Unsupported, Name: key}
}

func normalize(name string) string {
	name = strings.ToUpper(strings.ReplaceAll(name, "_", " "))
	return strings.Join(strings.Fields(name), " ")
}
