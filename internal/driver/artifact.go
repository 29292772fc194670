package driver

import (
	"fmt"

	"fortio.org/safecast"

	"sage/internal/ast"
	"sage/internal/interp"
	"sage/internal/symbols"
)

func symbolID(name int64) symbols.SymbolID {
	return symbols.SymbolID(name)
}

// NoNode marks an absent child reference in a flattened graph.
const NoNode int32 = -1

// NodePayload is one flattened graph vertex. Pointers become indices into
// Artifact.Nodes; types are carried as printed forms, which is enough for a
// back-end to re-intern.
type NodePayload struct {
	Kind     uint8
	Op       uint8
	Int      int64
	Bool     bool
	Str      string
	Sym      string
	Type     string
	ArgType  string
	ArgTypes []string
	Params   []string
	Name     string
	Kids     []int32
}

// Artifact is the cacheable encoding of everything one run emitted.
type Artifact struct {
	Schema uint16
	Path   string
	Roots  []int32
	Nodes  []NodePayload
}

// BuildArtifact flattens the emitted node graph of a run. Shared nodes
// (monomorphization cache hits) flatten once and keep their sharing.
func BuildArtifact(res *Result) (*Artifact, error) {
	enc := &artifactEncoder{
		ip:    res.Interp,
		index: make(map[*ast.Node]int32),
	}
	art := &Artifact{
		Schema: artifactSchemaVersion,
		Path:   res.Path,
	}
	for _, root := range res.Emitted {
		id, err := enc.flatten(art, root)
		if err != nil {
			return nil, err
		}
		art.Roots = append(art.Roots, id)
	}
	return art, nil
}

type artifactEncoder struct {
	ip    *interp.Interp
	index map[*ast.Node]int32
}

func (e *artifactEncoder) flatten(art *Artifact, n *ast.Node) (int32, error) {
	if n == nil {
		return NoNode, nil
	}
	if id, ok := e.index[n]; ok {
		return id, nil
	}
	lenNodes, err := safecast.Conv[int32](len(art.Nodes))
	if err != nil {
		return NoNode, fmt.Errorf("node count overflow: %w", err)
	}
	id := lenNodes
	e.index[n] = id
	art.Nodes = append(art.Nodes, NodePayload{})

	p := NodePayload{
		Kind: uint8(n.Kind),
		Int:  n.Int,
		Bool: n.Bool,
		Str:  n.Str,
		Type: e.ip.Types.String(n.Type),
	}
	switch n.Kind {
	case ast.KindSymbol, ast.KindAssign, ast.KindDefine:
		p.Sym = e.ip.Syms.Name(n.Sym)
	case ast.KindBinaryMath:
		p.Op = uint8(n.Math)
	case ast.KindBinaryLogic:
		p.Op = uint8(n.Logic)
	case ast.KindBinaryEqual:
		p.Op = uint8(n.Eq)
	case ast.KindBinaryRel:
		p.Op = uint8(n.Rel)
	case ast.KindFunction, ast.KindIncompleteFn:
		p.ArgType = e.ip.Types.String(n.ArgType)
		if n.Name != ast.NoName {
			p.Name = e.ip.Syms.Name(symbolID(n.Name))
		}
		for _, param := range n.Params {
			p.Params = append(p.Params, e.ip.Syms.Name(param))
		}
	case ast.KindNativeCall:
		for _, t := range n.ArgTypes {
			p.ArgTypes = append(p.ArgTypes, e.ip.Types.String(t))
		}
	}
	for _, kid := range n.Kids {
		kidID, err := e.flatten(art, kid)
		if err != nil {
			return NoNode, err
		}
		p.Kids = append(p.Kids, kidID)
	}
	art.Nodes[id] = p
	return id, nil
}
