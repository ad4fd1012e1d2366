// Package reconcile computes how an incoming skill collection maps onto the
// skills already persisted for a category.
package reconcile

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
)

// Plan is the set of writes that turns the persisted skills of one category
// into the incoming collection. Apply order is Delete, Update, Insert.
type Plan struct {
	// Delete holds persisted ids absent from the incoming collection.
	Delete []uuid.UUID
	// Update holds incoming skills whose id is persisted under the category.
	Update []models.SkillInput
	// Insert holds incoming skills without an id.
	Insert []models.SkillInput
	// Stale holds incoming ids that are not persisted under the category
	// (deleted meanwhile, or owned by another category). They are not written.
	Stale []uuid.UUID
}

// Empty reports whether applying the plan would write nothing.
func (p Plan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// Diff partitions incoming against the persisted ids. Skills are matched by id
// only: two incoming skills with the same name are two skills. Incoming order
// is preserved within Update and Insert.
func Diff(existing []uuid.UUID, incoming []models.SkillInput) Plan {
	persisted := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		persisted[id] = true
	}

	claimed := make(map[uuid.UUID]bool, len(incoming))
	var plan Plan
	for _, skill := range incoming {
		if !skill.HasID() {
			plan.Insert = append(plan.Insert, skill)
			continue
		}

		id := *skill.ID
		claimed[id] = true
		if persisted[id] {
			plan.Update = append(plan.Update, skill)
		} else {
			plan.Stale = append(plan.Stale, id)
		}
	}

	for _, id := range existing {
		if !claimed[id] {
			plan.Delete = append(plan.Delete, id)
		}
	}

	return plan
}
