package orderbookv1

// TradeLeg records one side's view of a trade: the resting order that
// participated, the price it rested at, and the quantity exchanged.
type TradeLeg struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

// Trade is a single matching step's result: a bid leg and an ask leg. The
// two legs may report different prices only when the aggressor
// price-improved through the passive side (the normal case for a crossing
// limit or market order).
type Trade struct {
	Bid TradeLeg
	Ask TradeLeg
}
