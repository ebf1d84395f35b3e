package csrt

import "sort"

// Pair is one key/value input to Construct.
type Pair[V any] struct {
	Key   Key
	Value V
}

// BuildOption configures Construct.
type BuildOption func(*buildConfig)

type buildConfig struct {
	verifySorted bool
}

// WithSortedCheck makes Construct verify that pairs arrive in strictly
// ascending key order, returning ErrUnsorted otherwise. Construct treats
// ascending order as a caller-enforced precondition by default and does not
// pay for the check unless this option is supplied.
func WithSortedCheck() BuildOption {
	return func(c *buildConfig) {
		c.verifySorted = true
	}
}

// Construct builds a Container from pairs, which must be sorted in
// ascending key order and free of duplicate keys. Sortedness is a
// caller-enforced precondition by default (see WithSortedCheck); duplicate
// detection always runs, as a byproduct of the single pass Construct makes
// over the input before laying out any node.
func Construct[V any](pairs []Pair[V], opts ...BuildOption) (*Container[V], error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(pairs) > 0xFFFF {
		return nil, capacityError("more than 65535 pairs")
	}

	for i, p := range pairs {
		if len(p.Key) == 0 {
			return nil, ErrEmptyKey
		}
		if i > 0 {
			cmp := pairs[i-1].Key.Compare(p.Key)
			if cmp == 0 {
				return nil, dupKeyError(p.Key)
			}
			if cmp > 0 && cfg.verifySorted {
				return nil, ErrUnsorted
			}
		}
	}

	b := &builder[V]{}
	if len(pairs) == 0 {
		return &Container[V]{tree: []uint16{0}}, nil
	}

	nodes, err := b.partition(pairs, 0, len(pairs), 0)
	if err != nil {
		return nil, err
	}
	group, err := buildGroup(nodes)
	if err != nil {
		return nil, err
	}

	out := newUnitBuffer()
	out.append(uint16(len(nodes)))
	out.concat(group)

	return &Container[V]{tree: out.materialize(), values: b.values}, nil
}

// builder accumulates the value slice while walking pairs depth-first.
// Value indices are handed out in the order leaves are discovered, which
// happens to coincide with ascending key order since pairs arrive sorted.
type builder[V any] struct {
	values []V
}

func (b *builder[V]) addValue(v V) (uint16, error) {
	if len(b.values) > 0xFFFF {
		return 0, capacityError("more than 65535 values")
	}
	idx := uint16(len(b.values))
	b.values = append(b.values, v)
	return idx, nil
}

// nodeCore is one not-yet-positioned radix node: everything about it except
// the sibling-offset slots that a surrounding binary group will fill in
// once it knows where this node's neighbours land.
type nodeCore struct {
	prefix        Key
	leaf          bool
	valueIndex    uint16
	childrenCount int
	descendant    *unitBuffer
}

// partition splits pairs[start:end), which already agree on every code
// unit before position depth, into contiguous runs sharing the code unit at
// position depth, and builds one node per run.
func (b *builder[V]) partition(pairs []Pair[V], start, end, depth int) ([]nodeCore, error) {
	var nodes []nodeCore
	i := start
	for i < end {
		c := pairs[i].Key[depth]
		j := i + 1
		for j < end && pairs[j].Key[depth] == c {
			j++
		}
		n, err := b.buildNode(pairs, i, j, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		i = j
	}
	return nodes, nil
}

// buildNode builds the single radix node covering pairs[start:end), which
// all agree on every code unit before keyIndex. It extends the node's own
// prefix as far as the whole run keeps agreeing, then — if more than one
// key remains — branches into children via partition.
func (b *builder[V]) buildNode(pairs []Pair[V], start, end, keyIndex int) (nodeCore, error) {
	if end-start == 1 {
		key := pairs[start].Key
		idx, err := b.addValue(pairs[start].Value)
		if err != nil {
			return nodeCore{}, err
		}
		return nodeCore{prefix: key[keyIndex:], leaf: true, valueIndex: idx}, nil
	}

	depth := keyIndex
	for len(pairs[start].Key) > depth {
		c := pairs[start].Key[depth]
		agree := true
		for i := start + 1; i < end; i++ {
			if len(pairs[i].Key) <= depth || pairs[i].Key[depth] != c {
				agree = false
				break
			}
		}
		if !agree {
			break
		}
		depth++
	}

	prefix := pairs[start].Key[keyIndex:depth]

	var heads []nodeCore
	rangeStart := start
	if len(pairs[start].Key) == depth {
		idx, err := b.addValue(pairs[start].Value)
		if err != nil {
			return nodeCore{}, err
		}
		heads = append(heads, nodeCore{leaf: true, valueIndex: idx})
		rangeStart = start + 1
	}

	kids, err := b.partition(pairs, rangeStart, end, depth)
	if err != nil {
		return nodeCore{}, err
	}
	heads = append(heads, kids...)

	descendant, err := buildGroup(heads)
	if err != nil {
		return nodeCore{}, err
	}

	return nodeCore{prefix: prefix, childrenCount: len(heads), descendant: descendant}, nil
}

// buildGroup serialises nodes as the balanced binary tree described in
// §4.2: recursively bisect around the midpoint, serialise each half on its
// own, and write the root with sibling offsets computed from the
// already-known sizes of those halves. No offset is ever patched after the
// fact — by the time a node is written, both of its sibling subtrees are
// already fully materialised buffers with a known length.
func buildGroup(nodes []nodeCore) (*unitBuffer, error) {
	if len(nodes) == 0 {
		return newUnitBuffer(), nil
	}
	mid, leftCount, rightCount := splitBinary(len(nodes))

	var left, right *unitBuffer
	var err error
	if leftCount > 0 {
		left, err = buildGroup(nodes[:mid])
		if err != nil {
			return nil, err
		}
	}
	if rightCount > 0 {
		right, err = buildGroup(nodes[mid+1:])
		if err != nil {
			return nil, err
		}
	}

	hasLeft := leftCount > 0
	hasRight := rightCount > 0
	leftLen := 0
	if hasLeft {
		leftLen = left.Len()
	}

	head, err := writeNode(nodes[mid], hasLeft, hasRight, leftLen)
	if err != nil {
		return nil, err
	}

	out := newUnitBuffer()
	out.concat(head)
	if hasLeft {
		out.concat(left)
	}
	if hasRight {
		out.concat(right)
	}
	return out, nil
}

// writeNode encodes one node's own header and payload: len, prefix,
// children (or the terminal zero), the sibling-offset slots this node's
// position in the binary group calls for, and finally either the value
// index (leaf) or the already-built descendant subtree (internal).
//
// leftOff, when present, is always the distance from this node's own
// children slot to the start of left — the two are serialised back to
// back with nothing in between. rightOff adds left's length on top of that
// when a left sibling is also present.
func writeNode(n nodeCore, hasLeft, hasRight bool, leftLen int) (*unitBuffer, error) {
	if len(n.prefix) > 0xFFFF {
		return nil, capacityError("prefix longer than 65535 code units")
	}

	buf := newUnitBuffer()
	buf.append(uint16(len(n.prefix)))
	if len(n.prefix) > 0 {
		buf.append([]uint16(n.prefix)...)
	}

	slots := 0
	if hasLeft {
		slots++
	}
	if hasRight {
		slots++
	}

	if n.leaf {
		buf.append(0)
		tailFromQ := 1 + slots + 1
		if err := appendSiblingSlots(buf, hasLeft, hasRight, tailFromQ, leftLen); err != nil {
			return nil, err
		}
		buf.append(n.valueIndex)
		return buf, nil
	}

	buf.append(uint16(n.childrenCount))
	descLen := n.descendant.Len()
	tailFromQ := 1 + slots + descLen
	if tailFromQ > 0xFFFF {
		return nil, capacityError("subtree exceeds 65535 code units")
	}
	if err := appendSiblingSlots(buf, hasLeft, hasRight, tailFromQ, leftLen); err != nil {
		return nil, err
	}
	buf.concat(n.descendant)
	return buf, nil
}

func appendSiblingSlots(buf *unitBuffer, hasLeft, hasRight bool, tailFromQ, leftLen int) error {
	if hasLeft {
		buf.append(uint16(tailFromQ))
	}
	if hasRight {
		rightOff := tailFromQ
		if hasLeft {
			rightOff += leftLen
		}
		if rightOff > 0xFFFF {
			return capacityError("sibling offset exceeds 65535 code units")
		}
		buf.append(uint16(rightOff))
	}
	return nil
}

// SortPairs sorts pairs in place by ascending key order, for callers that
// cannot otherwise guarantee Construct's input ordering precondition.
func SortPairs[V any](pairs []Pair[V]) {
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key.Compare(pairs[j].Key) < 0
	})
}
