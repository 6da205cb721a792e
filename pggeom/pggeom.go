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

// Package pggeom converts assembled areas into github.com/twpayne/go-geom
// values, the representation the PostGIS import pipeline consumes.
//
// Conversion validates on the way out: an area whose rings are degenerate
// or whose coordinates leave the world bounds is rejected here rather than
// handed to the database.
package pggeom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-geom"

	"github.com/remyleone/osm2pgsql/area"
)

// FromArea converts an assembled area into a multipolygon in XY layout.
// Ring order is preserved: each polygon starts with its outer ring followed
// by its holes, as emitted by the assembler. Errors are wrapped with the
// area's id and carry a BadGeometry code; test with errors.Is.
func FromArea(a *area.Area) (*geom.MultiPolygon, error) {
	if err := checkBound(a.Bound()); err != nil {
		return nil, fmt.Errorf("area %d: %w", a.ID, err)
	}
	mp := geom.NewMultiPolygon(geom.XY)
	for _, polygon := range a.Geometry {
		p := geom.NewPolygon(geom.XY)
		for _, ring := range polygon {
			if err := p.Push(geom.NewLinearRingFlat(geom.XY, flatCoords(ring))); err != nil {
				return nil, fmt.Errorf("area %d: %w", a.ID, err)
			}
		}
		if err := ValidatePolygon(p); err != nil {
			return nil, fmt.Errorf("area %d: %w", a.ID, err)
		}
		if err := mp.Push(p); err != nil {
			return nil, fmt.Errorf("area %d: %w", a.ID, err)
		}
	}
	return mp, nil
}

// flatCoords lays a ring out as interleaved XY coordinates.
func flatCoords(ring orb.Ring) []float64 {
	flat := make([]float64, 0, len(ring)*2)
	for _, pt := range ring {
		flat = append(flat, pt[0], pt[1])
	}
	return flat
}

func checkBound(b orb.Bound) error {
	if b.Min[0] < -180 || b.Max[0] > 180 || b.Min[1] < -90 || b.Max[1] > 90 {
		return BoundsExceeded
	}
	return nil
}
