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

// Package osm holds the minimal OpenStreetMap data model needed by the area
// assembler: fixed-point locations, node references, and the way/relation
// elements that multipolygon geometry is built from.
package osm

// NodeID is the id of an OSM node.
type NodeID int64

// WayID is the id of an OSM way.
type WayID int64

// RelationID is the id of an OSM relation.
type RelationID int64

// AreaID identifies an assembled area. Because areas can originate from
// either a closed way or a multipolygon relation, and way and relation id
// spaces overlap, area ids interleave the two: an area from way w has id
// 2*w, one from relation r has id 2*r+1.
type AreaID int64

// AreaIDFromWay returns the area id for an area built from a closed way.
func AreaIDFromWay(id WayID) AreaID { return AreaID(id) * 2 }

// AreaIDFromRelation returns the area id for an area built from a
// multipolygon relation.
func AreaIDFromRelation(id RelationID) AreaID { return AreaID(id)*2 + 1 }

// FromRelation reports whether the area originated from a relation.
func (id AreaID) FromRelation() bool { return id&1 == 1 }

// ObjectID returns the id of the way or relation the area was built from.
func (id AreaID) ObjectID() int64 { return int64(id) / 2 }

// NodeRef is a reference to a node: its id together with its resolved
// location. Ways store node refs rather than full nodes.
type NodeRef struct {
	ID       NodeID
	Location Location
}

// Way is an ordered list of node references defining a polyline, closed or
// open. Only the fields the assembler needs are modeled.
type Way struct {
	ID    WayID
	Tags  map[string]string
	Nodes []NodeRef
}

// IsClosed reports whether the way ends where it starts. Identity is by
// location, not node id: two different nodes at the same coordinates close
// the way.
func (w *Way) IsClosed() bool {
	if len(w.Nodes) < 2 {
		return false
	}
	return w.Nodes[0].Location == w.Nodes[len(w.Nodes)-1].Location
}

// ElementType distinguishes the three kinds of OSM elements a relation
// member can reference.
type ElementType int

const (
	TypeNode ElementType = iota
	TypeWay
	TypeRelation
)

func (t ElementType) String() string {
	switch t {
	case TypeNode:
		return "node"
	case TypeWay:
		return "way"
	case TypeRelation:
		return "relation"
	}
	return "unknown"
}

// Member is one entry of a relation: the element it references and the role
// it plays there ("outer", "inner", or empty for multipolygons).
type Member struct {
	Type ElementType
	Ref  int64
	Role string
}

// Relation is a multipolygon (or any other) relation. The assembler reads
// the member list for way roles; resolving member refs to ways is the
// caller's job.
type Relation struct {
	ID      RelationID
	Tags    map[string]string
	Members []Member
}
