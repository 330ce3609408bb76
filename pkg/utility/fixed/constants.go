package fixed

var (
	NegTen   = FromInt(-10, 0)
	NegNine  = FromInt(-9, 0)
	NegEight = FromInt(-8, 0)
	NegSeven = FromInt(-7, 0)
	NegSix   = FromInt(-6, 0)
	NegFive  = FromInt(-5, 0)
	NegFour  = FromInt(-4, 0)
	NegThree = FromInt(-3, 0)
	NegTwo   = FromInt(-2, 0)
	NegOne   = FromInt(-1, 0)

	Zero  = FromInt(0, 0)
	One   = FromInt(1, 0)
	Two   = FromInt(2, 0)
	Three = FromInt(3, 0)
	Four  = FromInt(4, 0)
	Five  = FromInt(5, 0)
	Six   = FromInt(6, 0)
	Seven = FromInt(7, 0)
	Eight = FromInt(8, 0)
	Nine  = FromInt(9, 0)
	Ten   = FromInt(10, 0)

	PointOne   = FromInt(1, 1)
	PointTwo   = FromInt(2, 1)
	PointThree = FromInt(3, 1)
	PointFour  = FromInt(4, 1)
	PointFive  = FromInt(5, 1)
	PointSix   = FromInt(6, 1)
	PointSeven = FromInt(7, 1)
	PointEight = FromInt(8, 1)
	PointNine  = FromInt(9, 1)

	Hundred = FromInt(100, 0)
)
