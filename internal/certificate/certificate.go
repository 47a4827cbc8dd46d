// Package certificate models the packed metadata field stored on-chain as a
// typed set of tagged certificate fragments. The ledger schema has one string
// slot per product; independent verifier roles (quality, compliance) each need
// to record a hash there without erasing the other's. All string munging lives
// here; call sites work with Set.
package certificate

import "strings"

// LegacyTag labels content that predates the packed form, or was written
// directly by some other client.
const LegacyTag = "legacy"

const (
	fragmentSeparator = ";"
	tagSeparator      = ":"
)

// Fragment is one verifier attestation: a tag naming the certificate kind and
// the certificate hash.
type Fragment struct {
	Tag  string
	Hash string
}

// Set is an ordered collection of fragments. Order is preserved across
// parse/merge/serialize round trips so merges stay deterministic.
type Set []Fragment

// Parse decodes a packed metadata string. Content that does not follow the
// tag:hash form is kept whole as a single legacy fragment rather than
// rejected; the field may have been set by a writer that predates tagging.
func Parse(packed string) Set {
	packed = strings.TrimSpace(packed)
	if packed == "" {
		return nil
	}

	var set Set
	for _, part := range strings.Split(packed, fragmentSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, hash, ok := strings.Cut(part, tagSeparator)
		if !ok || strings.TrimSpace(tag) == "" {
			return Set{{Tag: LegacyTag, Hash: packed}}
		}
		set = append(set, Fragment{Tag: strings.TrimSpace(tag), Hash: strings.TrimSpace(hash)})
	}
	return set
}

// String serializes the set back to the packed wire form.
func (s Set) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s))
	for _, f := range s {
		parts = append(parts, f.Tag+tagSeparator+f.Hash)
	}
	return strings.Join(parts, fragmentSeparator)
}

// Get returns the hash stored under tag.
func (s Set) Get(tag string) (string, bool) {
	for _, f := range s {
		if f.Tag == tag {
			return f.Hash, true
		}
	}
	return "", false
}

// With returns a set where tag resolves to hash: an existing fragment is
// replaced in place, a new tag is appended. No other fragment is touched.
func (s Set) With(tag, hash string) Set {
	out := make(Set, len(s))
	copy(out, s)
	for i, f := range out {
		if f.Tag == tag {
			out[i].Hash = hash
			return out
		}
	}
	return append(out, Fragment{Tag: tag, Hash: hash})
}

// Merge folds a new (tag, hash) pair into an existing packed string and
// returns the new packed form. Deterministic: same inputs, same output.
func Merge(existingPacked, tag, hash string) string {
	return Parse(existingPacked).With(tag, hash).String()
}
