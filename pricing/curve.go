// Package pricing computes unit prices for timed sales: flat pricing,
// linearly decaying dutch auctions clamped at a reserve, and the
// ascending variant. All arithmetic is exact integer math in the
// smallest currency unit.
package pricing

import "math"

// Curve describes a linear price curve anchored at a sale start time.
//
// Delta == 0 means a flat price. Otherwise the price moves by Delta per
// step, where a step is Interval seconds (Interval == 0 steps every
// second). The direction is inferred from the reserve: a reserve below
// the start price decays toward it, a reserve above it ascends toward
// it. The price never crosses the reserve.
type Curve struct {
	Price    uint64 // price at Start
	Reserve  uint64 // bound the price moves toward
	Start    int64  // sale start, UNIX seconds
	Interval uint64 // seconds per price step
	Delta    uint64 // price change per step
}

// Ascending reports whether the curve moves upward toward the reserve.
func (c Curve) Ascending() bool { return c.Delta != 0 && c.Reserve > c.Price }

// steps returns the number of whole price steps elapsed at now.
func (c Curve) steps(now int64) uint64 {
	if now <= c.Start {
		return 0
	}
	elapsed := uint64(now - c.Start)
	if c.Interval == 0 {
		return elapsed
	}
	return elapsed / c.Interval
}

// UnitPrice evaluates the curve at now.
func (c Curve) UnitPrice(now int64) uint64 {
	return c.priceAtStep(c.steps(now))
}

// priceAtStep evaluates the curve after the given number of steps,
// clamping at the reserve in either direction and guarding overflow.
func (c Curve) priceAtStep(steps uint64) uint64 {
	if c.Delta == 0 {
		return c.Price
	}
	if c.Ascending() {
		headroom := c.Reserve - c.Price
		if c.Delta != 0 && steps > headroom/c.Delta {
			return c.Reserve
		}
		return c.Price + steps*c.Delta
	}
	drop := c.Price - c.Reserve
	if steps > drop/c.Delta {
		return c.Reserve
	}
	return c.Price - steps*c.Delta
}

// BatchPrice computes the exact cost of buying quantity units in a
// single call at time now. On a moving curve each unit in the batch is
// priced one per-unit Delta further along, so an unclamped linear batch
// costs the arithmetic series q*p0 ± delta*q*(q-1)/2; units past the
// clamp step cost the reserve. Evaluated in closed form, so the cost is
// independent of quantity; totals saturate at the maximum uint64
// instead of wrapping, which makes an unaffordable batch fail payment
// validation rather than underprice.
func (c Curve) BatchPrice(now int64, quantity uint64) uint64 {
	if quantity == 0 {
		return 0
	}
	if c.Delta == 0 {
		return satMul(quantity, c.Price)
	}

	base := c.steps(now)
	var headroom uint64
	if c.Ascending() {
		headroom = c.Reserve - c.Price
	} else {
		headroom = c.Price - c.Reserve
	}
	lastLinear := headroom / c.Delta // steps beyond this price at the reserve

	if base > lastLinear {
		return satMul(quantity, c.Reserve)
	}

	// Units on the linear stretch, the rest at the reserve.
	linear := quantity
	if remaining := lastLinear - base; remaining < quantity {
		linear = remaining + 1
	}

	// Arithmetic series as linear*(p0+pLast)/2. One factor is always
	// even, so the division is exact.
	p0 := c.priceAtStep(base)
	pLast := c.priceAtStep(base + linear - 1)
	span := p0 + pLast
	if span < p0 {
		return math.MaxUint64
	}
	var total uint64
	if linear%2 == 0 {
		total = satMul(linear/2, span)
	} else {
		total = satMul(linear, span/2)
	}
	return satAdd(total, satMul(quantity-linear, c.Reserve))
}

func satMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/a != b {
		return math.MaxUint64
	}
	return p
}

func satAdd(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return math.MaxUint64
	}
	return s
}
