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
	"fmt"

	"github.com/remyleone/osm2pgsql/osm"
)

// Role is the multipolygon role a segment inherited from the relation
// member its way appeared as. It is advisory: ring assembly derives the
// true outer/inner classification from geometry and only uses roles to
// report mismatches.
type Role uint8

const (
	RoleNone Role = iota
	RoleOuter
	RoleInner
)

func (r Role) String() string {
	switch r {
	case RoleOuter:
		return "outer"
	case RoleInner:
		return "inner"
	}
	return ""
}

// RoleFromString maps a relation member role string to a Role. Unknown
// strings map to RoleNone, matching the convention that an empty or bogus
// role means "derive from geometry".
func RoleFromString(s string) Role {
	switch s {
	case "outer":
		return RoleOuter
	case "inner":
		return RoleInner
	}
	return RoleNone
}

// Segment is a directed edge between two node references, cut from a way
// during area assembly.
//
// The endpoints are stored normalized: first is always the lexicographically
// smaller location and the reversed flag recovers the traversal direction.
// Normalization makes the segment total order independent of direction,
// which is what allows a ring to keep its cached minimum segment valid
// across reversals.
//
// A segment's owning ring field is written by the ring operations as a side
// effect of appending; each segment belongs to at most one ring at a time.
// Segments are owned by a SegmentList for the whole assembly session and
// must outlive every ring referencing them.
type Segment struct {
	first  osm.NodeRef
	second osm.NodeRef
	way    *osm.Way
	ring   *Ring
	role   Role

	reversed      bool
	directionDone bool
	removed       bool
}

// NewSegment creates a segment from a to b, remembering the way it was cut
// from and the role that way played in its relation.
func NewSegment(a, b osm.NodeRef, role Role, way *osm.Way) Segment {
	s := Segment{first: a, second: b, role: role, way: way}
	if b.Location.Less(a.Location) {
		s.first, s.second = b, a
		s.reversed = true
	}
	return s
}

// First returns the endpoint with the smaller location.
func (s *Segment) First() osm.NodeRef { return s.first }

// Second returns the endpoint with the larger location.
func (s *Segment) Second() osm.NodeRef { return s.second }

// Start returns the endpoint the segment is traversed from.
func (s *Segment) Start() osm.NodeRef {
	if s.reversed {
		return s.second
	}
	return s.first
}

// Stop returns the endpoint the segment is traversed to.
func (s *Segment) Stop() osm.NodeRef {
	if s.reversed {
		return s.first
	}
	return s.second
}

// Reverse swaps the traversal direction. The normalized endpoints are
// untouched, so the segment's position in the total order does not change;
// the Det contribution changes sign.
func (s *Segment) Reverse() { s.reversed = !s.reversed }

// Det returns the signed area contribution of this segment, the shoelace
// cross-term x_start*y_stop - x_stop*y_start over fixed-point coordinates.
// Coordinates fit in int32, so the product cannot overflow int64.
func (s *Segment) Det() int64 {
	start, stop := s.Start().Location, s.Stop().Location
	return int64(start.X)*int64(stop.Y) - int64(stop.X)*int64(start.Y)
}

// Less is the segment total order: by first location, then second location.
// It is used for canonical minimum selection and duplicate detection and is
// invariant under Reverse.
func (s *Segment) Less(o *Segment) bool {
	if s.first.Location != o.first.Location {
		return s.first.Location.Less(o.first.Location)
	}
	return s.second.Location.Less(o.second.Location)
}

// sameEndpoints reports whether two segments span the same pair of
// locations, regardless of direction.
func (s *Segment) sameEndpoints(o *Segment) bool {
	return s.first.Location == o.first.Location && s.second.Location == o.second.Location
}

// Ring returns the ring this segment currently belongs to, or nil.
func (s *Segment) Ring() *Ring { return s.ring }

// Way returns the way this segment was cut from.
func (s *Segment) Way() *osm.Way { return s.way }

// Role returns the relation member role of the segment's way.
func (s *Segment) Role() Role { return s.role }

// DirectionDone reports whether the segment's direction has been finalized.
func (s *Segment) DirectionDone() bool { return s.directionDone }

// MarkDirectionDone finalizes the segment's direction so later assembly
// phases know not to reverse chains containing it.
func (s *Segment) MarkDirectionDone() { s.directionDone = true }

func (s *Segment) String() string {
	return fmt.Sprintf("(%d--%d)", s.Start().ID, s.Stop().ID)
}
