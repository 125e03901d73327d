package auth

// IsOwner reports whether the requester owns the resource.
//
// Callers surface an ownership mismatch as not-found, never as
// forbidden: resources a user cannot access look nonexistent, so a
// non-owner learns nothing about what exists. The same policy must be
// applied on every owned-resource mutation.
func IsOwner(ownerID, requesterID int64) bool {
	return ownerID != 0 && ownerID == requesterID
}
