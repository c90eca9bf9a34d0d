package extract

import "github.com/mvp-joe/apidoc/internal/javasrc"

// Collector turns parsed source units into API records.
// It holds no per-unit state and is safe for concurrent use.
type Collector struct {
	matcher *Matcher
	naming  Naming
}

// NewCollector creates a collector using the given identifier convention.
func NewCollector(naming Naming) *Collector {
	return &Collector{
		matcher: NewMatcher(),
		naming:  naming,
	}
}

// Collect runs the class pass into a base record, then derives one record per
// method in declaration order. Empty records are dropped.
func (c *Collector) Collect(unit *javasrc.Unit) []*Record {
	base := NewRecord(unit.Name, c.naming)
	for _, t := range unit.Types {
		c.matcher.ApplyClass(base, t.Annotations)
	}

	var records []*Record
	for _, method := range unit.Methods() {
		record := base.Derive()
		record.Line = method.StartLine
		c.matcher.ApplyMethod(record, method.Annotations)
		if !record.IsEmpty() {
			records = append(records, record)
		}
	}
	return records
}
