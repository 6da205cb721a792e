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

package osm

import (
	"fmt"
	"math"
)

// coordinatePrecision is the fixed-point scale for coordinates: one unit is
// 1e-7 degrees, the resolution of the OSM database. Storing coordinates as
// scaled int32 keeps the per-segment cross product exact in int64 arithmetic.
const coordinatePrecision = 10000000

// undefinedCoordinate marks a coordinate that was never set.
const undefinedCoordinate = math.MaxInt32

// Location is a point on the planet in fixed-point coordinates.
// X is the scaled longitude, Y the scaled latitude. The zero value is not
// a valid location only by accident (0,0 is in the Gulf of Guinea); use
// InvalidLocation for the explicit "not set" value.
type Location struct {
	X, Y int32
}

// InvalidLocation is the explicit "no location" value, for nodes whose
// coordinates are unknown.
var InvalidLocation = Location{X: undefinedCoordinate, Y: undefinedCoordinate}

// LocationFromDegrees creates a Location from floating point degrees,
// rounding to the fixed-point grid.
func LocationFromDegrees(lon, lat float64) Location {
	return Location{
		X: int32(math.Round(lon * coordinatePrecision)),
		Y: int32(math.Round(lat * coordinatePrecision)),
	}
}

// Lon returns the longitude in degrees.
func (l Location) Lon() float64 { return float64(l.X) / coordinatePrecision }

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 { return float64(l.Y) / coordinatePrecision }

// Valid reports whether the location is inside the world bounds
// (|lon| <= 180, |lat| <= 90). InvalidLocation is never valid.
func (l Location) Valid() bool {
	return l.X >= -180*coordinatePrecision && l.X <= 180*coordinatePrecision &&
		l.Y >= -90*coordinatePrecision && l.Y <= 90*coordinatePrecision
}

// Less orders locations by X, then Y. This is the coordinate order
// underlying the segment total order used during ring assembly.
func (l Location) Less(o Location) bool {
	if l.X != o.X {
		return l.X < o.X
	}
	return l.Y < o.Y
}

func (l Location) String() string {
	if !l.Valid() {
		return "(undefined)"
	}
	return fmt.Sprintf("(%g,%g)", l.Lon(), l.Lat())
}
