package service

import "cms-api/internal/domain/models"

// CanMutate reports whether caller may edit or delete a resource written by authorID.
func CanMutate(caller models.Caller, authorID int64) bool {
	return caller.Authenticated() && caller.UserID == authorID
}
