// Snapshot round-tripping for the persistence layer.
package supply

// Snapshot is the serializable form of the order book.
type Snapshot struct {
	ActiveOrders    []Order `json:"active_orders"`
	DeliveryHistory []Order `json:"delivery_history"`
	NextOrderID     uint64  `json:"next_order_id"`
}

// Snapshot captures pending orders and the delivery archive.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{NextOrderID: m.nextOrderID}
	for _, o := range m.active {
		s.ActiveOrders = append(s.ActiveOrders, *o)
	}
	for _, o := range m.history {
		s.DeliveryHistory = append(s.DeliveryHistory, *o)
	}
	return s
}

// Restore replaces the order book with a snapshot's contents.
func (m *Manager) Restore(s Snapshot) {
	m.active = make([]*Order, 0, len(s.ActiveOrders))
	for i := range s.ActiveOrders {
		o := s.ActiveOrders[i]
		m.active = append(m.active, &o)
	}
	m.history = make([]*Order, 0, len(s.DeliveryHistory))
	for i := range s.DeliveryHistory {
		o := s.DeliveryHistory[i]
		m.history = append(m.history, &o)
	}
	m.nextOrderID = s.NextOrderID
	if m.nextOrderID == 0 {
		m.nextOrderID = 1
	}
}
