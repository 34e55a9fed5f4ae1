package session

// InventoryStats is a pure derivation over the current inventory snapshot.
type InventoryStats struct {
	TotalProducts     int
	AvailableProducts int
	TotalValue        float64
	ByProductType     map[string]int
	ByCondition       map[string]int
}

// unknownCondition buckets products without a condition field.
const unknownCondition = "Unknown"

// InventoryStats computes aggregate counts and value over the inventory.
// It reads current state and has no side effects; nothing is cached.
func (s *Store) InventoryStats() InventoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := InventoryStats{
		ByProductType: make(map[string]int),
		ByCondition:   make(map[string]int),
	}

	for _, p := range s.inventory {
		stats.TotalProducts++
		if p.IsAvailable {
			stats.AvailableProducts++
		}
		stats.TotalValue += p.Price

		stats.ByProductType[p.ProductType]++

		condition := p.Condition
		if condition == "" {
			condition = unknownCondition
		}
		stats.ByCondition[condition]++
	}

	return stats
}
