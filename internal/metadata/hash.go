package metadata

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed fingerprints. Version suffix
// enables future algorithm migration.
const (
	DomainSelection = "graft/selection/v1"
	DomainModule    = "graft/module/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SelectionHash fingerprints a selection: the full names of the types
// slated for wholesale cloning and the (kind, declaring, name) triples of
// the individually selected members, both in selection order.
func SelectionHash(types []*TypeDef, members []Member) (string, error) {
	typeNames := make([]any, len(types))
	for i, t := range types {
		typeNames[i] = t.FullName()
	}

	memberKeys := make([]any, len(members))
	for i, m := range members {
		declaring := ""
		if d := m.Declaring(); d != nil {
			declaring = d.FullName()
		}
		memberKeys[i] = map[string]any{
			"kind":      KindOf(m),
			"declaring": declaring,
			"name":      m.MemberName(),
		}
	}

	data, err := MarshalCanonical(map[string]any{
		"types":   typeNames,
		"members": memberKeys,
	})
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainSelection, data), nil
}

// ModuleHash fingerprints a module snapshot (see Snapshot).
func ModuleHash(m *Module) (string, error) {
	data, err := MarshalCanonical(Snapshot(m))
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainModule, data), nil
}
