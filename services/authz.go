package services

// authorizeOwner allows a mutation only to the user recorded as the
// resource's owner at creation time.
func authorizeOwner(actorID, ownerID uint) error {
	if actorID != ownerID {
		return ErrForbidden
	}
	return nil
}
