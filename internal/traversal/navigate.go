package traversal

// Out moves to adjacent vertices over outgoing edges: .out('label',...).
func (b *Builder) Out(labels ...string) *Builder {
	return b.labeled(KindVertex, "out", labels)
}

// In moves to adjacent vertices over incoming edges.
func (b *Builder) In(labels ...string) *Builder {
	return b.labeled(KindVertex, "in", labels)
}

// Both moves to adjacent vertices over edges in either direction.
func (b *Builder) Both(labels ...string) *Builder {
	return b.labeled(KindVertex, "both", labels)
}

// OutE moves to outgoing edges.
func (b *Builder) OutE(labels ...string) *Builder {
	return b.labeled(KindEdge, "outE", labels)
}

// InE moves to incoming edges.
func (b *Builder) InE(labels ...string) *Builder {
	return b.labeled(KindEdge, "inE", labels)
}

// BothE moves to incident edges in either direction.
func (b *Builder) BothE(labels ...string) *Builder {
	return b.labeled(KindEdge, "bothE", labels)
}

// OutV moves from an edge to its outgoing vertex.
func (b *Builder) OutV() *Builder { return b.call(KindVertex, "outV") }

// InV moves from an edge to its incoming vertex.
func (b *Builder) InV() *Builder { return b.call(KindVertex, "inV") }

// OtherV moves from an edge to the vertex it was not reached from.
func (b *Builder) OtherV() *Builder { return b.call(KindVertex, "otherV") }

// CyclicPath keeps traversers whose path repeats an element.
func (b *Builder) CyclicPath() *Builder { return b.call(kindSame, "cyclicPath") }

// SimplePath keeps traversers whose path never repeats an element.
func (b *Builder) SimplePath() *Builder { return b.call(kindSame, "simplePath") }

// Path emits the path each traverser has taken.
func (b *Builder) Path() *Builder { return b.call(KindValue, "path") }

// labeled appends a navigation step filtered by optional edge labels.
func (b *Builder) labeled(kind Kind, name string, labels []string) *Builder {
	if !b.ready(name) {
		return b
	}
	args, err := quoteAll(name, "labels", labels)
	if err != nil {
		return b.fail(err)
	}
	return b.call(kind, name, args...)
}
