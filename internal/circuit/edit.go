package circuit

import (
	"fmt"
	"sort"
)

// IndexedOperation pairs an operation with the index of the moment it
// belongs to (or is destined for).
type IndexedOperation struct {
	Index int
	Op    Operation
}

// RewriteSummary is the output of one point-rewrite match: clear ClearSpan
// moments' worth of operations on ClearQubits starting at the match index,
// and replace them with NewOperations (which may be empty).
type RewriteSummary struct {
	ClearSpan     int
	ClearQubits   []Qubit
	NewOperations []Operation
}

// ApplyRewrite applies a rewrite summary anchored at the given moment
// index: operations touching the cleared qubits within the span are
// removed, and the replacement operations are packed into fresh moments
// spliced in at the index. It returns the number of moments inserted.
func (c *Circuit) ApplyRewrite(index int, s RewriteSummary) int {
	end := index + s.ClearSpan
	if end > len(c.moments) {
		end = len(c.moments)
	}
	for i := index; i < end; i++ {
		c.moments[i].removeTouching(s.ClearQubits)
	}
	if len(s.NewOperations) == 0 {
		return 0
	}
	fresh := packMoments(s.NewOperations)
	c.insertMoments(index, fresh)
	return len(fresh)
}

// BatchRemove removes the listed operations from their moments. All indices
// refer to the circuit as it was before the batch. It is an error to name
// an operation that is not present.
func (c *Circuit) BatchRemove(items []IndexedOperation) error {
	for _, item := range items {
		if item.Index < 0 || item.Index >= len(c.moments) {
			return fmt.Errorf("batch remove: moment index %d out of range", item.Index)
		}
		m := c.moments[item.Index]
		found := -1
		for i, op := range m.ops {
			if op.Equal(item.Op) {
				found = i
				break
			}
		}
		if found < 0 {
			return fmt.Errorf("batch remove: operation %v not in moment %d", item.Op, item.Index)
		}
		m.ops = append(m.ops[:found], m.ops[found+1:]...)
	}
	return nil
}

// BatchInsertInto adds each operation into the existing moment at its
// index, enforcing qubit-disjointness.
func (c *Circuit) BatchInsertInto(items []IndexedOperation) error {
	for _, item := range items {
		if item.Index < 0 || item.Index >= len(c.moments) {
			return fmt.Errorf("batch insert into: moment index %d out of range", item.Index)
		}
		if err := c.moments[item.Index].add(item.Op); err != nil {
			return fmt.Errorf("batch insert into moment %d: %w", item.Index, err)
		}
	}
	return nil
}

// BatchInsert inserts operations as new moments before the moment at each
// index, with all indices referring to the circuit as it was before the
// batch. Index Len() appends at the end. Operations sharing an index are
// packed together disjointly.
func (c *Circuit) BatchInsert(items []IndexedOperation) error {
	byIndex := make(map[int][]Operation)
	for _, item := range items {
		if item.Index < 0 || item.Index > len(c.moments) {
			return fmt.Errorf("batch insert: moment index %d out of range", item.Index)
		}
		byIndex[item.Index] = append(byIndex[item.Index], item.Op)
	}
	indices := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indices = append(indices, i)
	}
	// Highest index first, so earlier original indices stay valid.
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, i := range indices {
		c.insertMoments(i, packMoments(byIndex[i]))
	}
	return nil
}

// insertMoments splices the given moments in before index.
func (c *Circuit) insertMoments(index int, fresh []*Moment) {
	out := make([]*Moment, 0, len(c.moments)+len(fresh))
	out = append(out, c.moments[:index]...)
	out = append(out, fresh...)
	out = append(out, c.moments[index:]...)
	c.moments = out
}

// packMoments packs operations greedily into the minimal sequence of
// disjoint moments, preserving relative order per qubit.
func packMoments(ops []Operation) []*Moment {
	var out []*Moment
	for _, op := range ops {
		at := len(out)
		for i := len(out) - 1; i >= 0; i-- {
			if out[i].touchesAny(op.Qubits) {
				break
			}
			at = i
		}
		if at == len(out) {
			out = append(out, &Moment{})
		}
		out[at].ops = append(out[at].ops, op)
	}
	return out
}
