package autodiff

// tape holds the schedule of a backward pass: the number of not-yet-fired
// parents of every differentiable node reachable from the root.
//
// A node may only fire once all of its parents have fired, otherwise a
// node shared by several parents would propagate a partial gradient (or
// propagate twice). The counts are decremented as parents fire and a node
// is queued when its count reaches zero, which yields a reverse
// topological order of the graph.
type tape struct {
	root    *Node
	pending map[*Node]int
}

// record walks the differentiable subgraph under root and counts, for each
// node, the edges pointing to it. An operand used twice by the same parent
// (x + x) counts twice.
func record(root *Node) *tape {
	t := &tape{
		root:    root,
		pending: make(map[*Node]int),
	}
	if !root.differentiable() {
		return t
	}

	seen := map[*Node]struct{}{root: {}}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, in := range n.inputs() {
			if !in.differentiable() {
				continue
			}
			t.pending[in]++
			if _, ok := seen[in]; !ok {
				seen[in] = struct{}{}
				stack = append(stack, in)
			}
		}
	}
	return t
}

// Len returns the number of nodes the tape will fire.
func (t *tape) Len() int {
	if !t.root.differentiable() {
		return 0
	}
	return len(t.pending) + 1
}

// replay fires every scheduled node exactly once, in dependency order.
// visit is called after each node has propagated its gradient.
func (t *tape) replay(visit func(*Node)) error {
	if !t.root.differentiable() {
		return nil
	}

	queue := []*Node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if err := n.propagate(); err != nil {
			return err
		}
		visit(n)

		for _, in := range n.inputs() {
			if !in.differentiable() {
				continue
			}
			t.pending[in]--
			if t.pending[in] == 0 {
				queue = append(queue, in)
			}
		}
	}
	return nil
}
