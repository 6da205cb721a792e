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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/remyleone/osm2pgsql/osm"
)

func TestAreaAreaSquare(t *testing.T) {
	a := &Area{Geometry: orb.MultiPolygon{{
		orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}},
	}}}
	if got := a.Area(); math.Abs(got-4) > 1e-9 {
		t.Errorf("Area() = %v, want 4", got)
	}
}

func TestAreaAreaWithHole(t *testing.T) {
	// Shell counter-clockwise, hole clockwise: the hole's signed
	// contribution is negative, so a plain sum subtracts it.
	a := &Area{Geometry: orb.MultiPolygon{{
		orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
		orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
	}}}
	if got := a.Area(); math.Abs(got-15) > 1e-9 {
		t.Errorf("Area() = %v, want 15", got)
	}
}

func TestAreaAreaAssembled(t *testing.T) {
	outer := squareWay(1, 1, 0, 0, 4)
	hole := squareWay(2, 10, 1, 1, 1)
	rel := &osm.Relation{ID: 3, Members: []osm.Member{
		{Type: osm.TypeWay, Ref: 1, Role: "outer"},
		{Type: osm.TypeWay, Ref: 2, Role: "inner"},
	}}
	got, err := NewAssembler(Config{}).AssembleRelation(rel, []*osm.Way{outer, hole})
	if err != nil {
		t.Fatalf("AssembleRelation: %v", err)
	}
	if area := got.Area(); math.Abs(area-15) > 1e-9 {
		t.Errorf("Area() = %v, want 15", area)
	}
	// The canonical winding makes the signed sum agree with the
	// orientation-independent measure.
	if ref := planar.Area(got.Geometry); math.Abs(got.Area()-ref) > 1e-9 {
		t.Errorf("Area() = %v, planar.Area = %v", got.Area(), ref)
	}
}

func TestAreaBound(t *testing.T) {
	a := &Area{Geometry: orb.MultiPolygon{
		{orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}},
		{orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}},
	}}
	want := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{6, 6}}
	if diff := cmp.Diff(want, a.Bound()); diff != "" {
		t.Errorf("Bound() (-want +got):\n%s", diff)
	}
}

func TestAreaBoundEmpty(t *testing.T) {
	a := &Area{}
	if got := a.Bound(); got != (orb.Bound{}) {
		t.Errorf("Bound() = %v, want zero bound", got)
	}
}

func TestAreaOrigin(t *testing.T) {
	fromWay := &Area{ID: osm.AreaIDFromWay(21)}
	if fromWay.FromRelation() {
		t.Error("way-built area claims relation origin")
	}
	if got := fromWay.ObjectID(); got != 21 {
		t.Errorf("ObjectID() = %d, want 21", got)
	}

	fromRel := &Area{ID: osm.AreaIDFromRelation(21)}
	if !fromRel.FromRelation() {
		t.Error("relation-built area lost its origin")
	}
	if got := fromRel.ObjectID(); got != 21 {
		t.Errorf("ObjectID() = %d, want 21", got)
	}
}
