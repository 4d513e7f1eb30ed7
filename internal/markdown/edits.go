package markdown

import (
	"sort"
	"strconv"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// Edit is a byte-range replacement of source[Start:End].
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits, given as offsets into the
// original source, and returns the updated content. Edits are applied from
// the end of the source so earlier offsets stay valid.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < e.Start || e.End > len(source):
			return nil, invalidEdit(i, "range out of bounds")
		case i > 0 && e.End > sorted[i-1].Start:
			return nil, invalidEdit(i, "overlapping ranges")
		}
	}

	out := append([]byte(nil), source...)
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Replacement...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}

func invalidEdit(i int, msg string) error {
	return derrors.InternalError("invalid markdown edit: "+msg).
		WithContext("edit", strconv.Itoa(i)).
		Build()
}
