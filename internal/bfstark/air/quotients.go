package air

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// BoundaryQuotients computes one quotient codeword per boundary constraint:
// (constraint evaluated at row i) / (domain point i - 1), since every
// boundary constraint in this codebase's tables targets the first row
// (cycle 0) of the trace.
func BoundaryQuotients(domain *core.Domain, xfield *core.XField, codewords [][]*core.XFieldElement, table Table) ([][]*core.XFieldElement, error) {
	constraints := table.BoundaryConstraints()
	if len(constraints) == 0 {
		return nil, nil
	}
	base := domain.Offset().Field()
	n := domain.Length()

	zerofier := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		zerofier[i] = domain.Point(i).Sub(base.One())
	}
	zerofierInv, err := core.BatchInversion(zerofier)
	if err != nil {
		return nil, fmt.Errorf("air: boundary quotients: %w", err)
	}

	out := make([][]*core.XFieldElement, len(constraints))
	for l, c := range constraints {
		codeword := make([]*core.XFieldElement, n)
		row := make([]*core.XFieldElement, table.Width())
		for i := 0; i < n; i++ {
			for j := range row {
				row[j] = codewords[j][i]
			}
			codeword[i] = c.Eval(row).MulBase(zerofierInv[i])
		}
		out[l] = codeword
	}
	_ = xfield
	return out, nil
}

// BoundaryQuotientDegreeBounds computes the degree bound of each boundary
// quotient codeword: composition degree minus one, where the composition
// degree is the trace domain size minus one.
func BoundaryQuotientDegreeBounds(logNumRows int, table Table) []int {
	if table.Height() == 0 {
		return nil
	}
	compositionDegree := -1
	if logNumRows >= 0 {
		compositionDegree = (1 << logNumRows) - 1
	}
	n := len(table.BoundaryConstraints())
	bounds := make([]int, n)
	for i := range bounds {
		bounds[i] = compositionDegree - 1
	}
	return bounds
}

// TransitionQuotients computes one quotient codeword per transition
// constraint: (constraint evaluated at (row i, row i+step)) divided by the
// subgroup zerofier (X^order - 1)/(X - omicron^-1), where step is how many
// FRI-domain positions correspond to one trace row and order is the trace
// domain's size.
func TransitionQuotients(logNumRows int, domain *core.Domain, codewords [][]*core.XFieldElement, table Table) ([][]*core.XFieldElement, error) {
	if table.Height() == 0 {
		return nil, nil
	}
	constraints := table.TransitionConstraints()
	if len(constraints) == 0 {
		return nil, nil
	}

	order := 1 << logNumRows
	n := domain.Length()
	if n%order != 0 {
		return nil, fmt.Errorf("air: transition quotients: domain length %d is not a multiple of trace order %d", n, order)
	}
	step := n / order

	omicronInv, err := table.Omicron().Inv()
	if err != nil {
		return nil, fmt.Errorf("air: transition quotients: %w", err)
	}

	subgroupZerofier := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		subgroupZerofier[i] = domain.Point(i).ExpInt(order).Sub(domain.Offset().Field().One())
	}
	subgroupZerofierInv, err := core.BatchInversion(subgroupZerofier)
	if err != nil {
		return nil, fmt.Errorf("air: transition quotients: %w", err)
	}
	zerofierInv := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		zerofierInv[i] = subgroupZerofierInv[i].Mul(domain.Point(i).Sub(omicronInv))
	}

	out := make([][]*core.XFieldElement, len(constraints))
	width := table.Width()
	for l, c := range constraints {
		codeword := make([]*core.XFieldElement, n)
		current := make([]*core.XFieldElement, width)
		next := make([]*core.XFieldElement, width)
		for i := 0; i < n; i++ {
			for j := 0; j < width; j++ {
				current[j] = codewords[j][i]
				next[j] = codewords[j][(i+step)%n]
			}
			codeword[i] = c.Eval(current, next).MulBase(zerofierInv[i])
		}
		out[l] = codeword
	}
	return out, nil
}

// TransitionQuotientDegreeBounds computes the degree bound of each
// transition quotient codeword: (trace degree * max constraint degree) -
// trace degree, where trace degree is the trace domain size minus one.
func TransitionQuotientDegreeBounds(logNumRows int, table Table) []int {
	if table.Height() == 0 {
		return nil
	}
	traceDegree := -1
	if logNumRows >= 0 {
		traceDegree = (1 << logNumRows) - 1
	}
	constraints := table.TransitionConstraints()
	airDegree := 0
	for _, c := range constraints {
		if c.Degree > airDegree {
			airDegree = c.Degree
		}
	}
	compositionDegree := traceDegree * airDegree
	bounds := make([]int, len(constraints))
	for i := range bounds {
		bounds[i] = compositionDegree - traceDegree
	}
	return bounds
}

// TerminalQuotients computes one quotient codeword per terminal constraint:
// (constraint evaluated at row i) / (X - omicron^-1), the zerofier that
// vanishes only at the trace's last row.
func TerminalQuotients(domain *core.Domain, codewords [][]*core.XFieldElement, table Table) ([][]*core.XFieldElement, error) {
	if table.Height() == 0 {
		return nil, nil
	}
	constraints := table.TerminalConstraints()
	if len(constraints) == 0 {
		return nil, nil
	}

	omicronInv, err := table.Omicron().Inv()
	if err != nil {
		return nil, fmt.Errorf("air: terminal quotients: %w", err)
	}
	n := domain.Length()
	zerofier := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		zerofier[i] = domain.Point(i).Sub(omicronInv)
	}
	zerofierInv, err := core.BatchInversion(zerofier)
	if err != nil {
		return nil, fmt.Errorf("air: terminal quotients: %w", err)
	}

	out := make([][]*core.XFieldElement, len(constraints))
	width := table.Width()
	for l, c := range constraints {
		codeword := make([]*core.XFieldElement, n)
		row := make([]*core.XFieldElement, width)
		for i := 0; i < n; i++ {
			for j := 0; j < width; j++ {
				row[j] = codewords[j][i]
			}
			codeword[i] = c.Eval(row).MulBase(zerofierInv[i])
		}
		out[l] = codeword
	}
	return out, nil
}

// TerminalQuotientDegreeBounds computes the degree bound of each terminal
// quotient codeword: (max constraint degree * trace degree) - 1.
func TerminalQuotientDegreeBounds(logNumRows int, table Table) []int {
	if table.Height() == 0 {
		return nil
	}
	degree := -1
	if logNumRows >= 0 {
		degree = (1 << logNumRows) - 1
	}
	constraints := table.TerminalConstraints()
	airDegree := 0
	for _, c := range constraints {
		if c.Degree > airDegree {
			airDegree = c.Degree
		}
	}
	bounds := make([]int, len(constraints))
	for i := range bounds {
		bounds[i] = airDegree*degree - 1
	}
	return bounds
}

// AllQuotients concatenates the boundary, transition and terminal quotient
// codewords in that fixed order, the order the combined STARK codeword
// commits to them in.
func AllQuotients(domain *core.Domain, xfield *core.XField, codewords [][]*core.XFieldElement, table Table) ([][]*core.XFieldElement, error) {
	if table.Height() == 0 {
		return nil, nil
	}
	logNumRows := LogNumRows(table)

	boundary, err := BoundaryQuotients(domain, xfield, codewords, table)
	if err != nil {
		return nil, err
	}
	transition, err := TransitionQuotients(logNumRows, domain, codewords, table)
	if err != nil {
		return nil, err
	}
	terminal, err := TerminalQuotients(domain, codewords, table)
	if err != nil {
		return nil, err
	}

	all := make([][]*core.XFieldElement, 0, len(boundary)+len(transition)+len(terminal))
	all = append(all, boundary...)
	all = append(all, transition...)
	all = append(all, terminal...)
	return all, nil
}

// AllQuotientDegreeBounds concatenates the three quotient families' degree
// bounds in the same fixed order AllQuotients uses.
func AllQuotientDegreeBounds(table Table) []int {
	if table.Height() == 0 {
		return nil
	}
	logNumRows := LogNumRows(table)
	bounds := make([]int, 0)
	bounds = append(bounds, BoundaryQuotientDegreeBounds(logNumRows, table)...)
	bounds = append(bounds, TransitionQuotientDegreeBounds(logNumRows, table)...)
	bounds = append(bounds, TerminalQuotientDegreeBounds(logNumRows, table)...)
	return bounds
}

// NumQuotients returns the total number of quotient codewords this table
// contributes to the combined STARK codeword.
func NumQuotients(table Table) int {
	return len(AllQuotientDegreeBounds(table))
}

// QuotientsAtIndex computes the same boundary, transition and terminal
// quotient values AllQuotients computes over a whole codeword, but
// pointwise at a single FRI-domain index i, given that row and the row
// "step" positions ahead of it (the same next-row lookup TransitionQuotients
// uses internally). This lets a verifier who has opened only a handful of
// rows recompute the weighted quotient-combination value the prover
// claims at that index, instead of trusting it outright.
func QuotientsAtIndex(domain *core.Domain, i int, logNumRows int, currentRow, nextRow []*core.XFieldElement, table Table) ([]*core.XFieldElement, error) {
	base := domain.Offset().Field()
	point := domain.Point(i)
	var out []*core.XFieldElement

	if bcs := table.BoundaryConstraints(); len(bcs) > 0 {
		zerofierInv, err := point.Sub(base.One()).Inv()
		if err != nil {
			return nil, fmt.Errorf("air: quotients at index: boundary: %w", err)
		}
		for _, c := range bcs {
			out = append(out, c.Eval(currentRow).MulBase(zerofierInv))
		}
	}

	if tcs := table.TransitionConstraints(); len(tcs) > 0 && table.Height() > 0 {
		order := 1 << logNumRows
		omicronInv, err := table.Omicron().Inv()
		if err != nil {
			return nil, fmt.Errorf("air: quotients at index: transition: %w", err)
		}
		subgroupZerofier := point.ExpInt(order).Sub(base.One())
		subgroupZerofierInv, err := subgroupZerofier.Inv()
		if err != nil {
			return nil, fmt.Errorf("air: quotients at index: transition: %w", err)
		}
		zerofierInv := subgroupZerofierInv.Mul(point.Sub(omicronInv))
		for _, c := range tcs {
			out = append(out, c.Eval(currentRow, nextRow).MulBase(zerofierInv))
		}
	}

	if tercs := table.TerminalConstraints(); len(tercs) > 0 {
		omicronInv, err := table.Omicron().Inv()
		if err != nil {
			return nil, fmt.Errorf("air: quotients at index: terminal: %w", err)
		}
		zerofierInv, err := point.Sub(omicronInv).Inv()
		if err != nil {
			return nil, fmt.Errorf("air: quotients at index: terminal: %w", err)
		}
		for _, c := range tercs {
			out = append(out, c.Eval(currentRow).MulBase(zerofierInv))
		}
	}

	return out, nil
}
