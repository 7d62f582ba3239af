// Package schema defines the two canonical record schemas and maps raw
// spreadsheet rows onto them by resolving header aliases.
//
// Mapping and validation are deliberately separate stages: the mapper only
// renames columns, so the validator can report "missing field" uniformly no
// matter which header spelling (or none) the source file used.
package schema

// FieldSpec declares one canonical field: its name, the source headers that
// may carry it, and its validation class.
type FieldSpec struct {
	Name     string   // Canonical field name, e.g. "productName"
	Aliases  []string // Accepted source headers, tried in order; first match wins
	Required bool     // Field must be present and non-empty (literal "0" counts as present)
	Numeric  bool     // Value must parse as a decimal when present
	IsDate   bool     // Value is a calendar date
}

// Schema is an ordered list of field specs for one target record type.
type Schema struct {
	Name   string
	Fields []FieldSpec
}

// Dataset names the two ingestion targets.
type Dataset string

const (
	DatasetInventory Dataset = "inventory"
	DatasetSales     Dataset = "sales"
)

// ByDataset returns the schema for a dataset name, or nil.
func ByDataset(d Dataset) *Schema {
	switch d {
	case DatasetInventory:
		return Inventory
	case DatasetSales:
		return Sales
	}
	return nil
}

// MapRow resolves one raw row onto the schema's canonical field names.
// Aliases are matched case-sensitively in declaration order; unmapped source
// columns are dropped; a canonical field with no match is simply absent from
// the result (the validator surfaces that, not the mapper).
func (s *Schema) MapRow(raw map[string]string) map[string]string {
	mapped := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		for _, alias := range f.Aliases {
			if v, ok := raw[alias]; ok {
				mapped[f.Name] = v
				break
			}
		}
	}
	return mapped
}

// MapRows maps every row, preserving order.
func (s *Schema) MapRows(raw []map[string]string) []map[string]string {
	mapped := make([]map[string]string, len(raw))
	for i, r := range raw {
		mapped[i] = s.MapRow(r)
	}
	return mapped
}

// Field returns the FieldSpec for a canonical field name, or nil.
func (s *Schema) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
