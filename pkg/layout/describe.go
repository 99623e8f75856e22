package layout

import "fmt"

// FieldInfo is one row of a flattened record declaration.
type FieldInfo struct {
	Path   string  `yaml:"path"`
	Offset int     `yaml:"offset"`
	Size   int     `yaml:"size"`
	Expect *uint64 `yaml:"expect,omitempty"`
}

type counted interface {
	count() int
}

// Describe flattens the declaration of s into absolute field positions.
// Nested records are expanded; arrays are listed as a single row. Fields
// marked Hidden are left out, together with everything below them.
func Describe(s Struct) []FieldInfo {
	var out []FieldInfo
	describe(&out, s, "", 0)
	return out
}

func describe(out *[]FieldInfo, s Struct, prefix string, base int) {
	spec := s.Layout()
	fields, _ := spec.place()
	for _, p := range fields {
		if p.field.Internal {
			continue
		}
		path := p.field.Name
		if prefix != "" {
			path = prefix + "." + path
		}
		if sv, ok := p.field.Value.(structValue); ok {
			describe(out, sv.s, path, base+p.off)
			continue
		}
		if a, ok := p.field.Value.(counted); ok {
			path = fmt.Sprintf("%s[%d]", path, a.count())
		}
		info := FieldInfo{Path: path, Offset: base + p.off, Size: p.size}
		if p.field.Assert != nil {
			want := p.field.Assert.Want
			info.Expect = &want
		}
		*out = append(*out, info)
	}
}
