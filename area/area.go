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

package area

import (
	"github.com/paulmach/orb"

	"github.com/remyleone/osm2pgsql/osm"
)

// Area is an assembled polygon-with-holes, the output of the assembler and
// the input to downstream geometry emitters. Outer rings are wound
// counter-clockwise, holes clockwise.
type Area struct {
	ID       osm.AreaID
	Geometry orb.MultiPolygon

	// Ways lists the source ways that contributed segments, distinct and
	// sorted by id, for provenance and error attribution.
	Ways []*osm.Way
}

// FromRelation reports whether the area was assembled from a relation.
func (a *Area) FromRelation() bool { return a.ID.FromRelation() }

// ObjectID returns the id of the way or relation the area came from.
func (a *Area) ObjectID() int64 { return a.ID.ObjectID() }

// Area returns the area of the geometry in square degrees: the outer rings
// minus the holes. With the canonical winding the hole rings carry negative
// shoelace sums, so a plain signed accumulation over every ring suffices.
func (a *Area) Area() float64 {
	var sum float64
	for _, polygon := range a.Geometry {
		for _, ring := range polygon {
			sum += ringDetSum(ring)
		}
	}
	return sum / 2
}

// Bound returns the bounding box of the geometry in degrees.
func (a *Area) Bound() orb.Bound {
	var xs, ys []float64
	for _, polygon := range a.Geometry {
		for _, ring := range polygon {
			for _, pt := range ring {
				xs = append(xs, pt[0])
				ys = append(ys, pt[1])
			}
		}
	}
	if len(xs) == 0 {
		return orb.Bound{}
	}
	minX, maxX := BaseCoordMinMax(xs)
	minY, maxY := BaseCoordMinMax(ys)
	return orb.Bound{
		Min: orb.Point{minX, minY},
		Max: orb.Point{maxX, maxY},
	}
}

// ringDetSum computes twice the signed area of a closed ring by batching
// its edges through the shoelace kernel.
func ringDetSum(ring orb.Ring) float64 {
	n := len(ring) - 1
	if n < 2 {
		return 0
	}
	x0s := make([]float64, n)
	y0s := make([]float64, n)
	x1s := make([]float64, n)
	y1s := make([]float64, n)
	for i := 0; i < n; i++ {
		x0s[i] = ring[i][0]
		y0s[i] = ring[i][1]
		x1s[i] = ring[i+1][0]
		y1s[i] = ring[i+1][1]
	}
	return BaseSegmentDetSum(x0s, y0s, x1s, y1s)
}

func pointFromLocation(l osm.Location) orb.Point {
	return orb.Point{l.Lon(), l.Lat()}
}

// ringGeometry lays a ring's chain out as an orb.Ring: the first segment's
// start followed by every segment's stop. A closed chain yields a closed
// ring (last point equals first) with no extra bookkeeping.
func ringGeometry(r *Ring) orb.Ring {
	pts := make(orb.Ring, 0, len(r.segments)+1)
	pts = append(pts, pointFromLocation(r.Start().Location))
	for _, seg := range r.segments {
		pts = append(pts, pointFromLocation(seg.Stop().Location))
	}
	return pts
}
