package attr

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// Hash returns the content hash used to bucket realized faces. Family,
// foundry and the two main colors are case-folded; weight, slant, width and
// height contribute by value. Vectors that are Equal hash equally.
func Hash(v *Vector) uint64 {
	d := xxhash.New()
	fold := cases.Fold()
	var scratch [9]byte

	for _, slot := range []Slot{SlotForeground, SlotBackground, SlotFamily, SlotFoundry} {
		value := v[slot]
		scratch[0] = byte(value.kind)
		_, _ = d.Write(scratch[:1])
		if value.kind == KindString {
			_, _ = d.WriteString(fold.String(value.str))
		}
		_, _ = d.Write([]byte{0})
	}

	for _, slot := range []Slot{SlotWeight, SlotSlant, SlotWidth, SlotHeight} {
		value := v[slot]
		scratch[0] = byte(value.kind)
		switch value.kind {
		case KindFloat:
			binary.LittleEndian.PutUint64(scratch[1:], math.Float64bits(value.float))
		case KindFunc:
			if value.fn != nil {
				_, _ = d.WriteString(value.fn.Name)
			}
			binary.LittleEndian.PutUint64(scratch[1:], 0)
		default:
			binary.LittleEndian.PutUint64(scratch[1:], uint64(int64(value.num)))
		}
		_, _ = d.Write(scratch[:])
	}
	return d.Sum64()
}
