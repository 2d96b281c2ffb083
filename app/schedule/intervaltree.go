package schedule

// IntervalTree is an AVL-balanced interval tree augmented with subtree
// max-end values, indexing half-open minute intervals for point-stabbing
// queries. Trees are built once per report run and never mutated while
// queries are in flight.
type IntervalTree struct {
	root *treeNode
	size int
}

type treeNode struct {
	interval Interval
	maxEnd   int
	left     *treeNode
	right    *treeNode
	height   int
}

// Insert adds one interval. Duplicates are kept: two identical meetings
// overlapping each other is exactly what the density grid must count.
func (t *IntervalTree) Insert(iv Interval) {
	t.root = insertNode(t.root, iv)
	t.size++
}

// Len returns the number of stored intervals.
func (t *IntervalTree) Len() int {
	return t.size
}

// Stab returns every stored interval whose [Begin, End) contains the given
// minute. The result is exact; order follows the in-order walk of the tree.
func (t *IntervalTree) Stab(minute int) []Interval {
	var out []Interval
	stabNode(t.root, minute, &out)
	return out
}

// StabCount reports how many stored intervals cover the given minute.
func (t *IntervalTree) StabCount(minute int) int {
	return len(t.Stab(minute))
}

func nodeHeight(n *treeNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *treeNode) int {
	if n == nil {
		return 0
	}
	return nodeHeight(n.left) - nodeHeight(n.right)
}

func updateNode(n *treeNode) {
	lh, rh := nodeHeight(n.left), nodeHeight(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
	n.maxEnd = n.interval.End
	if n.left != nil && n.left.maxEnd > n.maxEnd {
		n.maxEnd = n.left.maxEnd
	}
	if n.right != nil && n.right.maxEnd > n.maxEnd {
		n.maxEnd = n.right.maxEnd
	}
}

func rotateRight(y *treeNode) *treeNode {
	x := y.left
	t := x.right
	x.right = y
	y.left = t
	updateNode(y)
	updateNode(x)
	return x
}

func rotateLeft(x *treeNode) *treeNode {
	y := x.right
	t := y.left
	y.left = x
	x.right = t
	updateNode(x)
	updateNode(y)
	return y
}

func insertNode(node *treeNode, iv Interval) *treeNode {
	if node == nil {
		return &treeNode{interval: iv, maxEnd: iv.End, height: 1}
	}

	if iv.Begin < node.interval.Begin {
		node.left = insertNode(node.left, iv)
	} else {
		node.right = insertNode(node.right, iv)
	}

	updateNode(node)

	bf := balanceFactor(node)
	if bf > 1 && iv.Begin < node.left.interval.Begin {
		return rotateRight(node)
	}
	if bf < -1 && iv.Begin >= node.right.interval.Begin {
		return rotateLeft(node)
	}
	if bf > 1 && iv.Begin >= node.left.interval.Begin {
		node.left = rotateLeft(node.left)
		return rotateRight(node)
	}
	if bf < -1 && iv.Begin < node.right.interval.Begin {
		node.right = rotateRight(node.right)
		return rotateLeft(node)
	}

	return node
}

func stabNode(node *treeNode, minute int, out *[]Interval) {
	if node == nil {
		return
	}

	// Nothing in this subtree ends after the query point.
	if minute >= node.maxEnd {
		return
	}

	stabNode(node.left, minute, out)

	if node.interval.Contains(minute) {
		*out = append(*out, node.interval)
	}

	// Right subtree holds intervals starting at or after this node's
	// begin; none of them can cover a point before that.
	if minute >= node.interval.Begin {
		stabNode(node.right, minute, out)
	}
}

// DayIndex holds one interval tree per grid day token.
type DayIndex map[string]*IntervalTree

// NewDayIndex returns an index with an empty tree for each of the six grid
// days. Sunday ("X") intervals are never indexed.
func NewDayIndex() DayIndex {
	idx := make(DayIndex, len(Days))
	for _, day := range Days {
		idx[day] = &IntervalTree{}
	}
	return idx
}

// Len returns the total number of intervals across all days.
func (idx DayIndex) Len() int {
	total := 0
	for _, tree := range idx {
		total += tree.Len()
	}
	return total
}
