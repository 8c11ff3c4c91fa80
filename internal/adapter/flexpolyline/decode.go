// Package flexpolyline decodes the flexible polyline format used by the
// HERE routing APIs: coordinates are delta-compressed, zigzag-signed, and
// written as 5-bit groups over a 64-character alphabet, preceded by a
// two-value header carrying the format version and the precision.
package flexpolyline

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const formatVersion = 1

// decodingTable maps ASCII code minus 45 to 6-bit values; -1 marks
// characters outside the alphabet
// "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_".
var decodingTable = [...]int8{
	62, -1, -1, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61,
	-1, -1, -1, -1, -1, -1, -1,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 22, 23, 24, 25,
	-1, -1, -1, -1, 63, -1,
	26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43,
	44, 45, 46, 47, 48, 49, 50, 51,
}

// Decoder implements domain.PolylineDecoder.
type Decoder struct{}

// Decode decodes an encoded polyline into (lon, lat) points.
func (Decoder) Decode(encoded string) ([]orb.Point, error) {
	return Decode(encoded)
}

// Decode converts a flexible polyline string into (lon, lat) points. The
// wire order is latitude first; the result follows the orb convention of
// longitude at index 0. Third-dimension values, when present, are consumed
// and discarded.
func Decode(encoded string) ([]orb.Point, error) {
	r := &reader{s: encoded}

	version, err := r.unsigned()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported polyline format version %d", version)
	}
	header, err := r.unsigned()
	if err != nil {
		return nil, err
	}
	precision := header & 15
	thirdDim := (header >> 4) & 7
	factor := math.Pow10(int(precision))

	var pts []orb.Point
	var lat, lng, third int64
	for !r.done() {
		dLat, err := r.signed()
		if err != nil {
			return nil, err
		}
		lat += dLat

		dLng, err := r.signed()
		if err != nil {
			return nil, err
		}
		lng += dLng

		if thirdDim != 0 {
			dThird, err := r.signed()
			if err != nil {
				return nil, err
			}
			third += dThird
		}

		pts = append(pts, orb.Point{float64(lng) / factor, float64(lat) / factor})
	}
	return pts, nil
}

type reader struct {
	s   string
	pos int
}

func (r *reader) done() bool { return r.pos >= len(r.s) }

// unsigned reads one variable-length value: 5 data bits per character,
// with 0x20 flagging continuation.
func (r *reader) unsigned() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if r.done() {
			return 0, fmt.Errorf("truncated polyline at byte %d", r.pos)
		}
		c := int(r.s[r.pos]) - 45
		if c < 0 || c >= len(decodingTable) || decodingTable[c] < 0 {
			return 0, fmt.Errorf("invalid polyline character %q at byte %d", r.s[r.pos], r.pos)
		}
		v := uint64(decodingTable[c])
		r.pos++
		result |= (v & 0x1F) << shift
		if v&0x20 == 0 {
			return result, nil
		}
		shift += 5
	}
}

// signed reads one value and undoes the zigzag mapping.
func (r *reader) signed() (int64, error) {
	u, err := r.unsigned()
	if err != nil {
		return 0, err
	}
	v := int64(u)
	if v&1 != 0 {
		v = ^v
	}
	return v >> 1, nil
}
