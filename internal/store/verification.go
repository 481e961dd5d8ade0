package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/lib/pq"
)

// DefaultCountry is preselected on the verification form.
const DefaultCountry = "IN"

// VerificationInput is a seller-upgrade request as submitted.
type VerificationInput struct {
	UID          string
	Email        string
	BusinessType enums.BusinessType
	Details      []string
}

// VerificationForm is the three-step application form: business type, its
// multiple-choice options, then company information.
type VerificationForm struct {
	BusinessType enums.BusinessType
	Options      []string
	CompanyName  string
	Country      string
}

var businessOptions = map[enums.BusinessType][]string{
	enums.BusinessTypeWholesaler: {
		"Online business",
		"Brick and mortar",
		"Distributor",
		"Procurement",
		"Manufacturer",
		"Purchaser",
		"Personal",
		"Social media based",
	},
	enums.BusinessTypeDropshipper: {
		"E-commerce platform",
		"Social media seller",
		"Marketplace seller",
		"Subscription box",
	},
}

// BusinessOptions lists the choices offered for a business type. Influencers have none.
func BusinessOptions(bt enums.BusinessType) []string {
	return slices.Clone(businessOptions[bt])
}

// BuildDetails renders the form into the details list: the chosen options
// followed by "Company: <name>" and "Country: <code>".
func (f VerificationForm) BuildDetails() ([]string, error) {
	if !f.BusinessType.IsValid() {
		return nil, fmt.Errorf("unknown business type %q", f.BusinessType)
	}
	allowed := businessOptions[f.BusinessType]
	details := make([]string, 0, len(f.Options)+2)
	for _, opt := range f.Options {
		if !slices.Contains(allowed, opt) {
			return nil, fmt.Errorf("%q is not an option for %s", opt, f.BusinessType)
		}
		details = append(details, opt)
	}
	country := strings.TrimSpace(f.Country)
	if country == "" {
		country = DefaultCountry
	}
	details = append(details, "Company: "+strings.TrimSpace(f.CompanyName), "Country: "+country)
	return details, nil
}

// SubmitVerification records a Pending request. Duplicate submissions are allowed.
func (s *Store) SubmitVerification(ctx context.Context, in VerificationInput) Outcome {
	return s.run(ctx, OpSubmitVerification, func(t *txn) {
		s.submitLocked(t, in)
	})
}

// SubmitOwnVerification submits form on behalf of the signed-in user.
func (s *Store) SubmitOwnVerification(ctx context.Context, form VerificationForm) Outcome {
	return s.run(ctx, OpSubmitVerification, func(t *txn) {
		user := s.currentUserLocked()
		if user == nil {
			t.fail(alert("Please sign in", "You must be signed in to submit a verification request."))
			t.redirect(enums.RouteSignIn)
			return
		}
		details, err := form.BuildDetails()
		if err != nil {
			t.fail(alert("Verification Not Submitted", capitalize(err.Error())+"."))
			return
		}
		s.submitLocked(t, VerificationInput{
			UID:          user.ID,
			Email:        user.Email,
			BusinessType: form.BusinessType,
			Details:      details,
		})
	})
}

func (s *Store) submitLocked(t *txn, in VerificationInput) {
	if !in.BusinessType.IsValid() {
		t.fail(alert("Verification Not Submitted", fmt.Sprintf("Unknown business type %q.", in.BusinessType)))
		return
	}
	if strings.TrimSpace(in.Email) == "" {
		t.fail(alert("Verification Not Submitted", "An email address is required."))
		return
	}

	v := models.BusinessVerification{
		ID:           s.newID(),
		UID:          in.UID,
		Email:        in.Email,
		BusinessType: in.BusinessType,
		Details:      append(pq.StringArray{}, in.Details...),
		Status:       enums.VerificationStatusPending,
		SubmittedAt:  s.now().UTC(),
	}
	s.verifications = append(s.verifications, v)

	archived := v.Clone()
	t.changed = true
	t.extra = append(t.extra, Event{Kind: EventVerificationSubmitted, Operation: t.op, Verification: &archived})
	t.outcome.ID = v.ID
	t.succeed(notice("Verification Submitted", "Your business verification has been sent to the admin for review."))
	t.redirect(enums.RouteOwnShopPlus)
}

// UpdateVerificationStatus records an admin decision. Approval promotes the
// applicant to seller, creating the roster entry if needed, and persists the
// roster. Repeating a decision re-applies its effects.
func (s *Store) UpdateVerificationStatus(ctx context.Context, id string, status enums.VerificationStatus) Outcome {
	return s.run(ctx, OpUpdateVerification, func(t *txn) {
		if !status.IsDecision() {
			t.fail(alert("Verification Not Updated", fmt.Sprintf("Status must be %s or %s.", enums.VerificationStatusApproved, enums.VerificationStatusRejected)))
			return
		}
		idx := slices.IndexFunc(s.verifications, func(v models.BusinessVerification) bool { return v.ID == id })
		if idx < 0 {
			t.outcome.NotFound = true
			t.fail(alert("Verification Not Found", fmt.Sprintf("No business verification with id %s exists.", id)))
			return
		}

		v := &s.verifications[idx]
		decidedAt := s.now().UTC()
		v.Status = status
		v.DecidedAt = &decidedAt
		t.changed = true
		t.outcome.ID = v.ID

		if status == enums.VerificationStatusApproved {
			s.promoteLocked(v.Email)
			s.persistRoster(ctx, OpUpdateVerification)
			t.succeed(notice("Verification Approved", v.Email+" is now a seller."))
		} else {
			t.succeed(notice("Verification Rejected", fmt.Sprintf("The business verification for %s has been rejected.", v.Email)))
		}

		decided := v.Clone()
		t.extra = append(t.extra, Event{Kind: EventVerificationDecided, Operation: t.op, Verification: &decided})
	})
}

func (s *Store) promoteLocked(email string) {
	if idx := findUser(s.roster, email); idx >= 0 {
		u := &s.roster[idx]
		u.Role = enums.RoleSeller
		if u.StoreName == nil || *u.StoreName == "" {
			name := DefaultStoreName(email)
			u.StoreName = &name
		}
		return
	}
	name := DefaultStoreName(email)
	s.roster = append(s.roster, models.User{
		ID:        s.newID(),
		Email:     email,
		Role:      enums.RoleSeller,
		StoreName: &name,
	})
}
