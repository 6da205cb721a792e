// Copyright 2026 The osm2pgsql-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pggeom

import (
	"github.com/twpayne/go-geom"
)

// BadGeometry classifies geometry defects that make an area unusable for
// the database. The codes satisfy error so validators return them directly.
type BadGeometry uint

const (
	// ShortRing: a linear ring with fewer than four points cannot bound
	// an area (the fourth point is the closing repeat of the first).
	ShortRing BadGeometry = iota

	// UnclosedRing: a ring whose last coordinate does not repeat its
	// first.
	UnclosedRing

	// EmptyPolygon: a polygon with no rings at all.
	EmptyPolygon

	// BoundsExceeded: coordinates outside the world bounds
	// (|lon| <= 180, |lat| <= 90).
	BoundsExceeded
)

var badGeometryReasons = [...]string{
	"ring has fewer than four points",
	"ring is not closed",
	"polygon has no rings",
	"coordinates exceed world bounds",
}

func (e BadGeometry) Error() string {
	if uint(e) >= uint(len(badGeometryReasons)) {
		return "unknown geometry defect"
	}
	return badGeometryReasons[e]
}

// ValidateRing checks that a linear ring can bound an area: at least four
// points, the last repeating the first. Coordinates coming out of the
// assembler are exact fixed-point values, so closure is tested with exact
// equality.
func ValidateRing(r *geom.LinearRing) error {
	if r.NumCoords() < 4 {
		return ShortRing
	}
	first := r.Coord(0)
	last := r.Coord(r.NumCoords() - 1)
	for i := range first {
		if first[i] != last[i] {
			return UnclosedRing
		}
	}
	return nil
}

// ValidatePolygon checks that a polygon has at least one ring and that
// every ring validates.
func ValidatePolygon(p *geom.Polygon) error {
	n := p.NumLinearRings()
	if n == 0 {
		return EmptyPolygon
	}
	for i := 0; i < n; i++ {
		if err := ValidateRing(p.LinearRing(i)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMultiPolygon checks every member polygon.
func ValidateMultiPolygon(mp *geom.MultiPolygon) error {
	for i := 0; i < mp.NumPolygons(); i++ {
		if err := ValidatePolygon(mp.Polygon(i)); err != nil {
			return err
		}
	}
	return nil
}

// RepairPolygon drops invalid holes from a polygon, keeping the shell and
// every valid hole. An invalid shell cannot be repaired: its error is
// returned and the polygon is left untouched.
func RepairPolygon(p *geom.Polygon) error {
	n := p.NumLinearRings()
	if n == 0 {
		return EmptyPolygon
	}
	var repaired *geom.Polygon
	for i := 0; i < n; i++ {
		if err := ValidateRing(p.LinearRing(i)); err != nil {
			if i == 0 {
				return err
			}
			if repaired == nil {
				repaired = geom.NewPolygon(p.Layout())
				for j := 0; j < i; j++ {
					repaired.Push(p.LinearRing(j))
				}
			}
		} else if repaired != nil {
			repaired.Push(p.LinearRing(i))
		}
	}
	if repaired != nil {
		p.Swap(repaired)
	}
	return nil
}
