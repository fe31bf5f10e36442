package glrender

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 4*3*4 + 2
)

// WriteBinarySTL writes triangles to w in binary STL format. Facet normals
// are computed from the triangle winding.
func WriteBinarySTL(w io.Writer, tris []ms3.Triangle) (int, error) {
	if uint64(len(tris)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for STL")
	}
	var header [stlHeaderSize + 4]byte
	copy(header[:], "binary STL written by glshapes")
	binary.LittleEndian.PutUint32(header[stlHeaderSize:], uint32(len(tris)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	var facet [stlFacetSize]byte
	for _, t := range tris {
		normal := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
		if l := ms3.Norm(normal); l > 0 {
			normal = ms3.Scale(1/l, normal)
		}
		putVec(facet[0:], normal)
		putVec(facet[12:], t[0])
		putVec(facet[24:], t[1])
		putVec(facet[36:], t[2])
		// Attribute byte count unused.
		facet[48], facet[49] = 0, 0
		ngot, err := w.Write(facet[:])
		n += ngot
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func putVec(b []byte, v ms3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}
