// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

// DFS colors
const (
	unvisited = iota
	inProgress
	done
)

type depGraph struct {
	d     *Design
	color []uint8
	post  []int
	path  []int // blocks on the DFS stack
	via   []int // via[i] is the net from path[i] to path[i+1]
}

// schedule derives the evaluation order of combinational blocks: block A
// comes before block B if A writes a net B reads. Sequential blocks are
// not part of the order.
//
func (d *Design) schedule() error {
	g := &depGraph{d: d, color: make([]uint8, len(d.blocks))}
	for b := range d.blocks {
		if d.blocks[b].kind != Combinational || g.color[b] != unvisited {
			continue
		}
		if err := g.visit(b); err != nil {
			return err
		}
	}

	// reverse post-order
	n := len(g.post)
	d.order = make([]int, n)
	d.rank = make([]int, len(d.blocks))
	for i := range d.rank {
		d.rank[i] = -1
	}
	for i, b := range g.post {
		d.order[n-1-i] = b
		d.rank[b] = n - 1 - i
	}
	return nil
}

func (g *depGraph) visit(b int) error {
	g.color[b] = inProgress
	g.path = append(g.path, b)
	for _, n := range g.d.blocks[b].writes {
		for _, r := range g.d.readers[n] {
			switch g.color[r] {
			case inProgress:
				return g.loop(r, n)
			case unvisited:
				g.via = append(g.via, n)
				if err := g.visit(r); err != nil {
					return err
				}
				g.via = g.via[:len(g.via)-1]
			}
		}
	}
	g.path = g.path[:len(g.path)-1]
	g.color[b] = done
	g.post = append(g.post, b)
	return nil
}

// loop builds the error for a back edge to block r through net n.
func (g *depGraph) loop(r, n int) error {
	i := len(g.path) - 1
	for g.path[i] != r {
		i--
	}
	e := &LoopError{}
	for _, b := range g.path[i:] {
		e.Blocks = append(e.Blocks, g.d.blocks[b].name)
	}
	for _, v := range g.via[i:] {
		e.Nets = append(e.Nets, g.d.nets[v].name)
	}
	e.Nets = append(e.Nets, g.d.nets[n].name)
	return e
}
