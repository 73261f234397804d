package force

// quadtree is a region tree over node positions used by the Barnes-Hut
// approximation. Each cell carries the aggregate charge and charge-weighted
// center of mass of everything below it.
type quadtree struct {
	root *quadCell
}

type quadCell struct {
	children [4]*quadCell
	points   []*SimNode // occupied only on leaves

	// aggregate charge and its center of mass, filled in by aggregate
	value float64
	x, y  float64

	// square bounds
	x0, y0, size float64
}

// maxDepth caps subdivision; coincident nodes would otherwise recurse
// forever, so past the cap they share a leaf.
const maxDepth = 32

// buildQuadtree inserts every node into a square tree covering the current
// layout extent. strength is the uniform per-node charge.
func buildQuadtree(nodes []*SimNode, strength float64) *quadtree {
	minX, minY := nodes[0].X, nodes[0].Y
	maxX, maxY := minX, minY
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}

	size := maxX - minX
	if maxY-minY > size {
		size = maxY - minY
	}
	if size == 0 {
		size = 1
	}

	t := &quadtree{root: &quadCell{x0: minX, y0: minY, size: size}}
	for _, n := range nodes {
		t.root.insert(n, 0)
	}
	t.root.aggregate(strength)
	return t
}

func (c *quadCell) quadrant(x, y float64) int {
	q := 0
	if x >= c.x0+c.size/2 {
		q |= 1
	}
	if y >= c.y0+c.size/2 {
		q |= 2
	}
	return q
}

func (c *quadCell) hasChildren() bool {
	return c.children[0] != nil || c.children[1] != nil ||
		c.children[2] != nil || c.children[3] != nil
}

func (c *quadCell) insert(n *SimNode, depth int) {
	if !c.hasChildren() {
		if len(c.points) == 0 || depth >= maxDepth {
			c.points = append(c.points, n)
			return
		}
		// Subdivide: push the resident points down, then fall through.
		pts := c.points
		c.points = nil
		for _, p := range pts {
			c.pushDown(p, depth)
		}
	}
	c.pushDown(n, depth)
}

func (c *quadCell) pushDown(n *SimNode, depth int) {
	q := c.quadrant(n.X, n.Y)
	if c.children[q] == nil {
		size := c.size / 2
		x0, y0 := c.x0, c.y0
		if q&1 != 0 {
			x0 += size
		}
		if q&2 != 0 {
			y0 += size
		}
		c.children[q] = &quadCell{x0: x0, y0: y0, size: size}
	}
	c.children[q].insert(n, depth+1)
}

// aggregate computes charges and centers of mass bottom-up.
func (c *quadCell) aggregate(strength float64) {
	if len(c.points) > 0 {
		c.value = strength * float64(len(c.points))
		var sx, sy float64
		for _, p := range c.points {
			sx += p.X
			sy += p.Y
		}
		c.x = sx / float64(len(c.points))
		c.y = sy / float64(len(c.points))
		return
	}
	var wx, wy, w float64
	for _, ch := range c.children {
		if ch == nil {
			continue
		}
		ch.aggregate(strength)
		wx += ch.value * ch.x
		wy += ch.value * ch.y
		w += ch.value
	}
	if w != 0 {
		c.x, c.y = wx/w, wy/w
		c.value = w
	}
}

// accumulate adds the repulsion felt by n. A cell is treated as a single
// point mass only when its extent is small relative to its distance
// (size/dist < theta), bounding the approximation error.
func (t *quadtree) accumulate(n *SimNode, alpha, theta2, min2 float64) {
	t.root.apply(n, alpha, theta2, min2)
}

func (c *quadCell) apply(n *SimNode, alpha, theta2, min2 float64) {
	dx := c.x - n.X
	dy := c.y - n.Y
	d2 := dx*dx + dy*dy

	if c.size*c.size < theta2*d2 && len(c.points) == 0 {
		if d2 < min2 {
			d2 = min2
		}
		w := c.value * alpha / d2
		n.VX += dx * w
		n.VY += dy * w
		return
	}

	if len(c.points) > 0 {
		charge := c.value / float64(len(c.points))
		for _, p := range c.points {
			if p == n {
				continue
			}
			px := p.X - n.X
			py := p.Y - n.Y
			pd2 := px*px + py*py
			if pd2 < min2 {
				pd2 = min2
			}
			w := charge * alpha / pd2
			n.VX += px * w
			n.VY += py * w
		}
		return
	}

	for _, ch := range c.children {
		if ch != nil {
			ch.apply(n, alpha, theta2, min2)
		}
	}
}
