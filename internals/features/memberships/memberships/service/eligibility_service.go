package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
)

/* =========================================================
   Eligibility evaluator: decides, for a (member, class) pair,
   whether a booking rides on a membership, falls back to a
   drop-in charge, or is rejected.
========================================================= */

type EligibilityOutcome string

const (
	OutcomeUseMembership EligibilityOutcome = "use_membership"
	OutcomeUseDropIn     EligibilityOutcome = "use_drop_in"
	OutcomeIneligible    EligibilityOutcome = "ineligible"
)

type Eligibility struct {
	Outcome     EligibilityOutcome
	Membership  *model.MembershipModel // set for OutcomeUseMembership
	CreditBased bool                   // the selected membership meters by session credits
}

type EligibilityService struct{}

func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// Evaluate picks the member's most recently started active membership and tests
// the three gates: validity window, credit availability and category match.
// Multiple active memberships are legal; most-recent-start wins.
func (s *EligibilityService) Evaluate(db *gorm.DB, now time.Time, studioID, userID uuid.UUID, class *classModel.ClassModel) (Eligibility, error) {
	var m model.MembershipModel
	err := db.Preload("Plan").
		Where("membership_studio_id = ? AND membership_user_id = ? AND membership_status = ?",
			studioID, userID, model.MembershipStatusActive).
		Order("membership_starts_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.dropInFallback(class), nil
		}
		return Eligibility{}, err
	}

	timeOK := m.TimeOK(now)

	// Plans that do not meter by sessions always pass the credit gate. A
	// membership whose plan row vanished is treated as time-based (the snapshot
	// keeps it billable).
	creditBased := m.Plan != nil && m.Plan.IsCreditBased()
	creditOK := !creditBased || (m.MembershipRemainingSessions != nil && *m.MembershipRemainingSessions > 0)

	categoryOK := class.ClassCategoryID == nil ||
		m.Plan == nil ||
		m.Plan.MembershipPlanCategoryID == nil ||
		*m.Plan.MembershipPlanCategoryID == *class.ClassCategoryID

	if timeOK && creditOK && categoryOK {
		return Eligibility{Outcome: OutcomeUseMembership, Membership: &m, CreditBased: creditBased}, nil
	}
	return s.dropInFallback(class), nil
}

// EvaluateDropIn is the explicit drop-in path: the membership check is skipped
// entirely so that a member opting into drop-in is never silently charged
// against their membership.
func (s *EligibilityService) EvaluateDropIn(class *classModel.ClassModel) Eligibility {
	if class.ClassDropInEnabled {
		return Eligibility{Outcome: OutcomeUseDropIn}
	}
	return Eligibility{Outcome: OutcomeIneligible}
}

func (s *EligibilityService) dropInFallback(class *classModel.ClassModel) Eligibility {
	if class.ClassDropInEnabled {
		return Eligibility{Outcome: OutcomeUseDropIn}
	}
	return Eligibility{Outcome: OutcomeIneligible}
}
