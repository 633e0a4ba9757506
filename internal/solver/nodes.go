package solver

import "github.com/san-kum/circsim/internal/circuit"

// nodeIndex assigns dense matrix indices to electrical nodes. Ground gets
// no row or column; its terminals map to circuit.GroundNode.
type nodeIndex struct {
	ground int         // root of the ground node
	index  map[int]int // non-ground root -> dense index
}

// buildNodeIndex selects ground and indexes the remaining roots in
// first-encountered order over the stored component order. Ground is the
// root of the first battery's terminal 0 (the negative pole); with no
// battery present it falls back to the first root encountered.
func buildNodeIndex(comps []*circuit.Component, topo *topology) *nodeIndex {
	ni := &nodeIndex{ground: -1, index: make(map[int]int)}
	for _, c := range comps {
		if c.Kind == circuit.KindBattery {
			ni.ground = topo.find(c.ID, 0)
			break
		}
	}
	for _, c := range comps {
		for terminal := 0; terminal < 2; terminal++ {
			root := topo.find(c.ID, terminal)
			if ni.ground < 0 {
				ni.ground = root
			}
			if root == ni.ground {
				continue
			}
			if _, ok := ni.index[root]; !ok {
				ni.index[root] = len(ni.index)
			}
		}
	}
	return ni
}

// at maps a root to its dense index, circuit.GroundNode for ground.
func (ni *nodeIndex) at(root int) int {
	if root == ni.ground {
		return circuit.GroundNode
	}
	return ni.index[root]
}

// free returns the number of non-ground nodes.
func (ni *nodeIndex) free() int { return len(ni.index) }
