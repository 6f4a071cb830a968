package model

// Triple is a single extracted relation: head entity, relation, tail entity.
type Triple struct {
	Head     string `json:"head"`
	Relation string `json:"type"`
	Tail     string `json:"tail"`
}

// GraphNode is a node in the document graph.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GraphEdge is a labeled directed edge between two nodes.
type GraphEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Graph is the node/edge set built from document metadata and relation
// triples, ready to be serialized as RDF.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
