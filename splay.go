package csrt

// splitBinary computes the left/right partition sizes for a balanced
// binary tree built over count ordered siblings, left-favouring when count
// is odd, per spec §4.2.
//
//	mid := count / 2
//
// is the root's position; elements [0, mid) form the left subtree and
// elements (mid, count) form the right subtree.
func splitBinary(count int) (mid, left, right int) {
	if count <= 0 {
		return 0, 0, 0
	}
	mid = count / 2
	left = mid
	right = count - mid - 1
	return mid, left, right
}

// descendLeft computes the new (left, right) sibling counts after
// descending into the left subtree of a binary group that currently has
// left siblings remaining on its own left side. It mirrors splitBinary
// exactly so the lookup engine can track remaining sibling counts without
// storing them inline in the flat array.
func descendLeft(left int) (newLeft, newRight int) {
	newLeft = left >> 1
	newRight = left - newLeft - 1
	return newLeft, newRight
}

// descendRight is the symmetric counterpart of descendLeft for descending
// into the right subtree of a binary group with right siblings remaining.
func descendRight(right int) (newLeft, newRight int) {
	newLeft = right >> 1
	newRight = right - newLeft - 1
	return newLeft, newRight
}
