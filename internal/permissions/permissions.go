package permissions

import (
	"newsportal/internal/models"
)

// Action is the closed set of request kinds the evaluator decides on.
type Action int

const (
	// ActionRead - list/retrieve
	ActionRead Action = iota
	// ActionWrite - update/partial update
	ActionWrite
	// ActionManage - create/delete
	ActionManage
)

// Evaluator answers whether an actor may perform an action, first at the
// request level, then against a concrete object.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Allows is the request-level check, before any object is loaded.
func (e *Evaluator) Allows(actor *models.User, action Action) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionRead:
		return true
	case ActionWrite:
		return true
	case ActionManage:
		return actor.IsStaff
	default:
		return false
	}
}

// AllowsUserObject decides write access to a user record: the actor owns
// it, or the actor is staff and the target is not a superuser.
func (e *Evaluator) AllowsUserObject(actor *models.User, target *models.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.UserID == target.UserID {
		return true
	}
	return actor.IsStaff && target.Role != models.RoleSuperuser
}

// AllowsPostObject decides write access to a post: its author or staff.
func (e *Evaluator) AllowsPostObject(actor *models.User, post *models.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	if actor.UserID == post.AuthorID {
		return true
	}
	return actor.IsStaff
}

// AllowsCompanyObject decides write access to a company: a member of the
// company or staff.
func (e *Evaluator) AllowsCompanyObject(actor *models.User, company *models.Company) bool {
	if actor == nil || company == nil {
		return false
	}
	if actor.CompanyID != nil && *actor.CompanyID == company.CompanyID {
		return true
	}
	return actor.IsStaff
}
