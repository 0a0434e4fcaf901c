package cart

import (
	"sort"
	"strconv"
	"strings"
)

// fingerprintDelimiter separates canonical fields. Pipe does not occur in
// product slugs or option names.
const fingerprintDelimiter = "|"

// Fingerprint derives a short stable identifier from a product slug plus its
// configuration. Finishings are sorted before joining so their selection
// order never affects the result. The canonical string is reduced with a
// 31-polynomial rolling hash folded into an int32 accumulator and rendered
// as an unsigned base-36 string.
//
// This is a dedup/display key, not a security identifier: determinism and
// practical collision resistance are the only guarantees.
func Fingerprint(productSlug string, cfg Configuration) string {
	finishings := append([]string(nil), cfg.Finishings...)
	sort.Strings(finishings)

	canonical := strings.Join([]string{
		productSlug,
		cfg.Format,
		cfg.Paper,
		cfg.Colors,
		strings.Join(finishings, ","),
		cfg.ProjectPreparation,
	}, fingerprintDelimiter)

	var h int32
	for _, r := range canonical {
		h = h*31 + int32(r)
	}

	return strconv.FormatUint(uint64(uint32(h)), 36)
}
