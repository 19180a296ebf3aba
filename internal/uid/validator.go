package uid

import "github.com/vvka-141/markuid/pkg/markuid"

// Validate classifies every site in one pass: an empty or missing value is
// Absent, the first occurrence of a value is Valid and any later occurrence
// is Duplicate. It reports whether every site is Valid.
func Validate(doc *Document) bool {
	seen := make(map[string]struct{}, len(doc.Sites))
	allValid := true

	for i := range doc.Sites {
		site := &doc.Sites[i]
		if site.Value == "" {
			site.Status = StatusAbsent
			allValid = false
			continue
		}
		if _, dup := seen[site.Value]; dup {
			site.Status = StatusDuplicate
			allValid = false
			continue
		}
		seen[site.Value] = struct{}{}
		site.Status = StatusValid
	}

	return allValid
}

// Diagnostics returns one entry per Absent or Duplicate site, in document order.
func Diagnostics(path string, doc *Document) []markuid.Diagnostic {
	var out []markuid.Diagnostic
	for i := range doc.Sites {
		site := &doc.Sites[i]
		d := markuid.Diagnostic{
			File:    path,
			Element: site.QName,
			Line:    site.Position.Line,
			Column:  site.Position.Column,
		}
		switch site.Status {
		case StatusAbsent:
			d.Kind = markuid.DiagnosticAbsent
		case StatusDuplicate:
			d.Kind = markuid.DiagnosticDuplicate
			d.Value = site.Value
		default:
			continue
		}
		out = append(out, d)
	}
	return out
}
