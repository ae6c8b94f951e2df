package services

// LockedUsers reports how many per-user cart locks are currently allocated.
func (s *CartService) LockedUsers() int {
	return s.locks.size()
}
