// Package curve implements the BN254 (alt_bn128) G1 operations used by the
// mental poker protocol: scalar multiplication, point addition and the
// compressed point encoding carried on the wire.
package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// PointSize is the size of an uncompressed G1 point (x || y, big-endian).
	PointSize = 64
	// CompressedSize is the size of a compressed G1 point.
	CompressedSize = 32
	// ScalarSize is the size of a scalar.
	ScalarSize = 32
)

// Compressed point flag bits, stored in the top byte of the x coordinate.
// The BN254 base field prime starts with 0x30, so bits 6 and 7 are free.
const (
	flagOddY     = 0x80 // set iff y > p/2
	flagInfinity = 0x40
	flagMask     = flagOddY | flagInfinity
)

var (
	ErrPointAtInfinity = errors.New("curve: point at infinity")
	ErrPointNotOnCurve = errors.New("curve: point not on curve")
	ErrInvalidScalar   = errors.New("curve: invalid scalar")
)

// Point is an affine BN254 G1 point.
type Point = bn254.G1Affine

var g1Gen Point

func init() {
	_, _, g1Gen, _ = bn254.Generators()
}

// Generator returns the G1 generator point.
func Generator() Point {
	return g1Gen
}

// ScalarOrder returns n, the order of the G1 group.
func ScalarOrder() *big.Int {
	return fr.Modulus()
}

// ScalarMul computes scalar * p. The scalar is interpreted as a 32-byte
// big-endian integer and reduced mod n; a scalar that reduces to zero is
// rejected. A result at infinity is rejected.
func ScalarMul(p *Point, scalar *[ScalarSize]byte) (Point, error) {
	var k fr.Element
	k.SetBytes(scalar[:])
	if k.IsZero() {
		return Point{}, ErrInvalidScalar
	}
	var kInt big.Int
	k.BigInt(&kInt)

	var out Point
	out.ScalarMultiplication(p, &kInt)
	if out.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return out, nil
}

// Add computes p + q. A result at infinity is rejected.
func Add(p, q *Point) (Point, error) {
	var out Point
	out.Add(p, q)
	if out.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return out, nil
}

// Compress serializes a point to 32 bytes: the big-endian x coordinate with
// bit 7 of the first byte set iff y > p/2.
func Compress(p *Point) ([CompressedSize]byte, error) {
	if p.IsInfinity() {
		return [CompressedSize]byte{}, ErrPointAtInfinity
	}
	out := p.X.Bytes()
	if p.Y.LexicographicallyLargest() {
		out[0] |= flagOddY
	}
	return out, nil
}

// Decompress parses a 32-byte compressed point, recovering y from the curve
// equation y^2 = x^3 + 3 and the sign flag. The infinity flag is rejected, as
// is any x outside the base field or off the curve.
func Decompress(data *[CompressedSize]byte) (Point, error) {
	if data[0]&flagInfinity != 0 {
		return Point{}, ErrPointAtInfinity
	}
	largestY := data[0]&flagOddY != 0

	var raw [CompressedSize]byte
	copy(raw[:], data[:])
	raw[0] &^= flagMask

	// x must be canonical: SetBytes reduces silently, so range-check first.
	xInt := new(big.Int).SetBytes(raw[:])
	if xInt.Cmp(fp.Modulus()) >= 0 {
		return Point{}, ErrPointNotOnCurve
	}

	var x fp.Element
	x.SetBytes(raw[:])

	// y^2 = x^3 + 3
	var ySq, y fp.Element
	ySq.Square(&x).Mul(&ySq, &x)
	var three fp.Element
	three.SetUint64(3)
	ySq.Add(&ySq, &three)
	if y.Sqrt(&ySq) == nil {
		return Point{}, ErrPointNotOnCurve
	}
	if y.LexicographicallyLargest() != largestY {
		y.Neg(&y)
	}

	p := Point{X: x, Y: y}
	if p.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	if !p.IsOnCurve() {
		return Point{}, ErrPointNotOnCurve
	}
	return p, nil
}

// PointToBytes serializes a point to its uncompressed 64-byte form.
func PointToBytes(p *Point) [PointSize]byte {
	var out [PointSize]byte
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(out[:32], x[:])
	copy(out[32:], y[:])
	return out
}

// PointFromBytes parses an uncompressed 64-byte point, checking that both
// coordinates are canonical field elements and that the point is on the
// curve. The all-zero encoding (affine infinity) is rejected.
func PointFromBytes(data *[PointSize]byte) (Point, error) {
	xInt := new(big.Int).SetBytes(data[:32])
	yInt := new(big.Int).SetBytes(data[32:])
	if xInt.Cmp(fp.Modulus()) >= 0 || yInt.Cmp(fp.Modulus()) >= 0 {
		return Point{}, ErrPointNotOnCurve
	}
	if xInt.Sign() == 0 && yInt.Sign() == 0 {
		return Point{}, ErrPointAtInfinity
	}

	var p Point
	p.X.SetBytes(data[:32])
	p.Y.SetBytes(data[32:])
	if !p.IsOnCurve() {
		return Point{}, ErrPointNotOnCurve
	}
	return p, nil
}

// MulBytes multiplies an uncompressed point by a scalar, both in wire form.
// This is the core reveal operation: multiplying by the modular inverse of a
// lock key strips that player's lock from the card.
func MulBytes(point *[PointSize]byte, scalar *[ScalarSize]byte) ([PointSize]byte, error) {
	p, err := PointFromBytes(point)
	if err != nil {
		return [PointSize]byte{}, err
	}
	out, err := ScalarMul(&p, scalar)
	if err != nil {
		return [PointSize]byte{}, err
	}
	return PointToBytes(&out), nil
}

// ScalarInverse computes a^-1 mod n for a 32-byte big-endian scalar. The
// protocol computes inverses off-chain; this helper exists for the simulator
// and for tests.
func ScalarInverse(scalar *[ScalarSize]byte) ([ScalarSize]byte, error) {
	var a fr.Element
	a.SetBytes(scalar[:])
	if a.IsZero() {
		return [ScalarSize]byte{}, ErrInvalidScalar
	}
	var inv fr.Element
	inv.Inverse(&a)
	return inv.Bytes(), nil
}
