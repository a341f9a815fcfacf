package service

import "github.com/Habid-Marun/getsemani-vivo/internal/model"

// isOwnerOrAdmin gates every mutation on a business and its sub-resources.
// Callers must confirm the business exists before applying this check, so a
// forbidden outcome never leaks whether the id exists.
func isOwnerOrAdmin(actor *model.User, business *model.Business) bool {
	if actor == nil || business == nil {
		return false
	}
	return business.OwnerID == actor.ID || actor.IsAdmin()
}
