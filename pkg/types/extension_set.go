// SPDX-License-Identifier: MPL-2.0

package types

// ExtensionSet is an ordered collection of file extensions (e.g. ".js",
// ".json") used as candidates during resolution. It preserves declaration
// order regardless of whether the caller built it from an ordered sequence
// or from the key-iteration order of a mapping — both shapes are permitted
// by the resolver's extensions configuration.
type ExtensionSet struct {
	exts []string
}

// NewExtensionSet builds an ExtensionSet from an ordered sequence of
// extensions, preserving the given order.
func NewExtensionSet(exts ...string) ExtensionSet {
	cp := make([]string, len(exts))
	copy(cp, exts)
	return ExtensionSet{exts: cp}
}

// Slice returns the extensions in declaration order. The returned slice is
// a copy; mutating it does not affect the ExtensionSet.
func (s ExtensionSet) Slice() []string {
	cp := make([]string, len(s.exts))
	copy(cp, s.exts)
	return cp
}

// Len returns the number of extensions in the set.
func (s ExtensionSet) Len() int { return len(s.exts) }

// WithFront returns a new ExtensionSet with ext moved to the front, removing
// any existing occurrence elsewhere in the list. Used to prioritize the
// parent file's own extension during candidate enumeration.
func (s ExtensionSet) WithFront(ext string) ExtensionSet {
	if ext == "" {
		return s
	}
	out := make([]string, 0, len(s.exts)+1)
	out = append(out, ext)
	for _, e := range s.exts {
		if e != ext {
			out = append(out, e)
		}
	}
	return ExtensionSet{exts: out}
}

// WithLeadingEmpty returns a new ExtensionSet with an empty-string entry
// prepended, so the base filename itself (no extension appended) is tried
// first among candidates.
func (s ExtensionSet) WithLeadingEmpty() ExtensionSet {
	out := make([]string, 0, len(s.exts)+1)
	out = append(out, "")
	out = append(out, s.exts...)
	return ExtensionSet{exts: out}
}
