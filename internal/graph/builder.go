package graph

import (
	"github.com/javutech/medpipe/internal/model"
)

// Node labels used in the document graph.
const (
	LabelPatient = "Patient"
	LabelDoctor  = "Doctor"
	LabelEntity  = "Entity"
)

// Build assembles the document graph. The patient anchors the graph when
// named; a named doctor gets a "treats" edge to the patient. Relation
// triples contribute generic entity nodes, deduplicated by ID, with one
// edge per triple.
func Build(metadata map[string]string, triples []model.Triple) model.Graph {
	var g model.Graph
	seen := make(map[string]bool)

	addNode := func(id, label string) {
		if id == "" || seen[id] {
			return
		}
		g.Nodes = append(g.Nodes, model.GraphNode{ID: id, Label: label})
		seen[id] = true
	}

	if patient, ok := metadata[KeyPatientName]; ok {
		addNode(patient, LabelPatient)
		if doctor, ok := metadata[KeyDoctor]; ok {
			addNode(doctor, LabelDoctor)
			g.Edges = append(g.Edges, model.GraphEdge{From: doctor, To: patient, Label: "treats"})
		}
	}

	for _, t := range triples {
		addNode(t.Head, LabelEntity)
		addNode(t.Tail, LabelEntity)
		g.Edges = append(g.Edges, model.GraphEdge{From: t.Head, To: t.Tail, Label: t.Relation})
	}

	return g
}
