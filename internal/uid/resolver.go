package uid

import (
	"strconv"
	"strings"
)

// Resolve picks a new unique value for every Absent and Duplicate site and,
// when an inserted identifier has no prefix in scope, the single prefix to
// declare on the root element. Sites must have been classified by Validate.
//
// A site's friendly name is adopted when nobody uses it yet; otherwise the
// value is "<element><separator><n>" with n one above the largest number
// already seen for that element name.
func Resolve(doc *Document) {
	for i := range doc.Sites {
		if doc.Sites[i].Status == StatusValid {
			doc.record(doc.Sites[i].Value)
		}
	}

	for i := range doc.Sites {
		site := &doc.Sites[i]
		if site.Status != StatusAbsent && site.Status != StatusDuplicate {
			continue
		}
		site.Resolved = doc.allocate(site)
		site.Status = StatusResolved
	}

	doc.choosePrefix()
}

func (d *Document) allocate(site *Site) string {
	if site.Candidate != "" {
		if _, taken := d.used[site.Candidate]; !taken {
			d.record(site.Candidate)
			return site.Candidate
		}
	}
	return d.next(site.Element)
}

// record marks value as used and raises the sequence maximum it encodes.
func (d *Document) record(value string) {
	d.used[value] = struct{}{}
	if name, n, ok := d.parseSequence(value); ok && n > d.maxIndex[name] {
		d.maxIndex[name] = n
	}
}

// parseSequence splits "Button_12" into ("Button", 12). The number must be
// plain decimal without a leading zero and fit in an int64.
func (d *Document) parseSequence(value string) (string, int64, bool) {
	sep := d.opts.Separator
	i := strings.LastIndex(value, sep)
	if i <= 0 {
		return "", 0, false
	}
	suffix := value[i+len(sep):]
	if suffix == "" || suffix[0] == '0' {
		return "", 0, false
	}
	for j := 0; j < len(suffix); j++ {
		if suffix[j] < '0' || suffix[j] > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return value[:i], n, true
}

// next returns the next free value in the sequence for name, switching to the
// fallback sequence once name's counter has reached the ceiling.
func (d *Document) next(name string) string {
	for {
		n := d.maxIndex[name]
		if n >= d.ceiling {
			return d.nextFallback()
		}
		n++
		d.maxIndex[name] = n
		value := d.compose(name, n)
		if _, taken := d.used[value]; taken {
			continue
		}
		d.record(value)
		return value
	}
}

// nextFallback walks "_Uid", "_Uid1", "_Uid2", ... until a sequence with
// headroom is found. A variant never seen before starts at 1.
func (d *Document) nextFallback() string {
	for {
		name := d.opts.Fallback
		if d.fallback > 0 {
			name += strconv.Itoa(d.fallback)
		}
		n := d.maxIndex[name]
		if n >= d.ceiling {
			d.fallback++
			continue
		}
		n++
		d.maxIndex[name] = n
		value := d.compose(name, n)
		if _, taken := d.used[value]; taken {
			continue
		}
		d.record(value)
		return value
	}
}

func (d *Document) compose(name string, n int64) string {
	return name + d.opts.Separator + strconv.FormatInt(n, 10)
}

// choosePrefix decides the document-wide prefix for the reserved namespace
// when at least one inserted identifier has none in scope. Candidates are the
// configured letter, then the letter followed by 1, 2, 3, ...
func (d *Document) choosePrefix() {
	needed := false
	for i := range d.Sites {
		site := &d.Sites[i]
		if site.Status == StatusResolved && !site.HasAttribute() && site.Prefix == "" {
			needed = true
			break
		}
	}
	if !needed {
		return
	}

	prefix := d.opts.Prefix
	for i := 1; ; i++ {
		if _, declared := d.Declared[prefix]; !declared {
			break
		}
		prefix = d.opts.Prefix + strconv.Itoa(i)
	}
	d.NewPrefix = prefix
}
