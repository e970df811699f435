package ladder

import orderbookv1 "github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/domain/orderbook/v1"

// Node is a handle into a price level's FIFO queue. A Node pointer is
// stable under unrelated insertions and removals at the same or other
// price levels - there is no separate iterator to invalidate, because the
// queue is a hand-rolled doubly linked list of Nodes and a Node addresses
// itself. Grounded on the original order book's std::list<OrderPointer>
// iterator-as-handle design (order_book.hpp), adapted to Go's absence of
// stable container iterators.
type Node struct {
	order      *orderbookv1.Order
	prev, next *Node
	lvl        *level
}

// Order returns the order this node holds.
func (n *Node) Order() *orderbookv1.Order { return n.order }

// level is one price's FIFO queue of resting orders.
type level struct {
	price orderbookv1.Price
	head  *Node
	tail  *Node
	size  int
}

func newLevel(price orderbookv1.Price) *level {
	return &level{price: price}
}

func (l *level) pushBack(order *orderbookv1.Order) *Node {
	n := &Node{order: order, lvl: l}
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
	return n
}

func (l *level) remove(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next, n.lvl = nil, nil, nil
	l.size--
}

func (l *level) empty() bool { return l.size == 0 }
