package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mwananchi-loans/domain"
	"mwananchi-loans/repository"
)

// stubUnderwriter returns a fixed ceiling and counts evaluations.
type stubUnderwriter struct {
	ceiling float64
	calls   int
}

func (s *stubUnderwriter) Evaluate(domain.EligibilityData) float64 {
	s.calls++
	return s.ceiling
}

func newTestFlow(ceiling float64) (*Flow, *stubUnderwriter, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	underwriter := &stubUnderwriter{ceiling: ceiling}
	flow := NewFlow(
		store,
		underwriter,
		DefaultCatalog(),
		NewCalculator(DefaultInterestRate, DefaultServiceFeeRate),
		DefaultPaybillNumber,
	)
	return flow, underwriter, store
}

func signupUser(t *testing.T, flow *Flow, sid string) domain.UserRecord {
	t.Helper()
	user, err := flow.Signup(context.Background(), sid, SignupInput{
		Name:          "Jane Doe",
		County:        "nairobi",
		Phone:         "0712345678",
		NationalID:    "12345678",
		Gender:        "female",
		DateOfBirth:   "1990-01-01",
		MaritalStatus: "single",
		Password:      "secret123",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return user
}

func TestQualification_WithoutUserRedirectsToLogin(t *testing.T) {

	flow, _, _ := newTestFlow(20000)

	_, err := flow.Qualification(context.Background(), "s1")
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestReview_WithoutDraftRedirectsToQualify(t *testing.T) {

	flow, _, _ := newTestFlow(20000)
	signupUser(t, flow, "s1")

	_, err := flow.Review(context.Background(), "s1")
	if !errors.Is(err, ErrQualifyRequired) {
		t.Fatalf("expected ErrQualifyRequired, got %v", err)
	}
}

func TestSubmitEligibility_DerivesDisplayName(t *testing.T) {

	flow, _, _ := newTestFlow(20000)

	user, err := flow.SubmitEligibility(context.Background(), "s1", domain.EligibilityData{
		Education:  domain.EducationSecondary,
		Employment: domain.EmploymentEmployed,
		Income:     domain.Income5KTo15K,
		Purpose:    domain.PurposeBusiness,
		Phone:      "0712345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Name != "User 5678" {
		t.Errorf("expected derived name User 5678, got %q", user.Name)
	}
	if user.Phone != "0712345678" {
		t.Errorf("expected phone kept, got %q", user.Phone)
	}
}

func TestSubmitEligibility_KeepsExistingName(t *testing.T) {

	flow, _, _ := newTestFlow(20000)
	signupUser(t, flow, "s1")

	user, err := flow.SubmitEligibility(context.Background(), "s1", domain.EligibilityData{
		Phone: "0712345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Jane Doe" {
		t.Errorf("expected existing name kept, got %q", user.Name)
	}
}

func TestLogin(t *testing.T) {

	flow, _, _ := newTestFlow(20000)
	signupUser(t, flow, "s1")

	if _, err := flow.Login(context.Background(), "s1", "0712345678"); err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}

	if _, err := flow.Login(context.Background(), "s1", "0799999999"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}

	if _, err := flow.Login(context.Background(), "empty-session", "0712345678"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed for unknown session, got %v", err)
	}
}

func TestSignup_DoesNotStorePlaintextPassword(t *testing.T) {

	flow, _, store := newTestFlow(20000)
	signupUser(t, flow, "s1")

	stored, _, err := store.GetUser(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret123" {
		t.Errorf("expected hashed password, got %q", stored.PasswordHash)
	}
}

func TestQualification_CeilingStableWithinAttempt(t *testing.T) {

	flow, underwriter, _ := newTestFlow(17000)
	signupUser(t, flow, "s1")

	first, err := flow.Qualification(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := flow.Qualification(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.QualifiedLoanAmount != second.QualifiedLoanAmount {
		t.Errorf("ceiling changed within attempt: %.0f then %.0f",
			first.QualifiedLoanAmount, second.QualifiedLoanAmount)
	}
	if underwriter.calls != 1 {
		t.Errorf("expected a single underwriter evaluation, got %d", underwriter.calls)
	}
}

func TestSelectPlan_RestrictedTierLeavesSelectionUnchanged(t *testing.T) {

	flow, _, store := newTestFlow(50000)
	signupUser(t, flow, "s1")
	// fresh signup: history is empty

	if _, err := flow.Qualification(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := flow.SelectPlan(context.Background(), "s1", 350); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := flow.SelectPlan(context.Background(), "s1", 1550)
	if !errors.Is(err, ErrRestrictedTier) {
		t.Fatalf("expected ErrRestrictedTier, got %v", err)
	}

	q, _, err := store.GetQualification(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Selected == nil || q.Selected.Savings != 350 {
		t.Errorf("selection should be unchanged after rejection")
	}
}

func TestConfirmPlan_Preconditions(t *testing.T) {

	flow, _, store := newTestFlow(20000)
	signupUser(t, flow, "s1")

	if _, err := flow.ConfirmPlan(context.Background(), "s1", true); !errors.Is(err, ErrQualifyRequired) {
		t.Fatalf("expected ErrQualifyRequired before qualification, got %v", err)
	}

	if _, err := flow.Qualification(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := flow.ConfirmPlan(context.Background(), "s1", true); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	if _, _, err := flow.SelectPlan(context.Background(), "s1", 120); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := flow.ConfirmPlan(context.Background(), "s1", false); !errors.Is(err, ErrNotAcknowledged) {
		t.Fatalf("expected ErrNotAcknowledged, got %v", err)
	}

	if _, ok, _ := store.GetDraft(context.Background(), "s1"); ok {
		t.Errorf("no draft should be written before acknowledgment")
	}
}

func TestFlow_EndToEnd(t *testing.T) {

	flow, _, store := newTestFlow(17000)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	flow.now = func() time.Time { return now }

	signupUser(t, flow, "s1")

	view, err := flow.Qualification(context.Background(), "s1")
	if err != nil {
		t.Fatalf("qualification failed: %v", err)
	}
	if view.QualifiedLoanAmount != 17000 {
		t.Fatalf("expected ceiling 17000, got %.0f", view.QualifiedLoanAmount)
	}
	if view.ExistingMember {
		t.Fatalf("fresh member should not be existing")
	}

	// Tier 350 nominally unlocks 12500, below the 17000 ceiling.
	plan, payment, err := flow.SelectPlan(context.Background(), "s1", 350)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if plan.LoanLimit != 12500 {
		t.Fatalf("expected limit 12500, got %.0f", plan.LoanLimit)
	}
	if payment.PaybillNumber != DefaultPaybillNumber || payment.AccountNumber != "0712345678" {
		t.Errorf("unexpected payment instruction: %+v", payment)
	}

	draft, err := flow.ConfirmPlan(context.Background(), "s1", true)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if draft.LoanLimit != 12500 || draft.QualifiedLoanAmount != 17000 {
		t.Fatalf("unexpected draft: %+v", draft)
	}

	summary, err := flow.Review(context.Background(), "s1")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if summary.Breakdown.Interest != 0.08*12500 {
		t.Errorf("expected interest %.2f, got %.2f", 0.08*12500, summary.Breakdown.Interest)
	}
	if summary.Breakdown.ServiceFee != 0.05*12500 {
		t.Errorf("expected service fee %.2f, got %.2f", 0.05*12500, summary.Breakdown.ServiceFee)
	}
	if summary.Breakdown.Disbursable != 0.87*12500 {
		t.Errorf("expected disbursable %.2f, got %.2f", 0.87*12500, summary.Breakdown.Disbursable)
	}
	if summary.TermDays != 21 {
		t.Errorf("expected term 21 days, got %d", summary.TermDays)
	}

	// Re-rendering the review from the same draft yields identical figures.
	again, err := flow.Review(context.Background(), "s1")
	if err != nil {
		t.Fatalf("second review failed: %v", err)
	}
	if again.Breakdown != summary.Breakdown {
		t.Errorf("review is not idempotent: %+v vs %+v", again.Breakdown, summary.Breakdown)
	}

	entry, err := flow.Disburse(context.Background(), "s1")
	if err != nil {
		t.Fatalf("disburse failed: %v", err)
	}
	if entry.Status != domain.LoanStatusDisbursed {
		t.Errorf("expected status disbursed, got %q", entry.Status)
	}
	if entry.Amount != 12500 {
		t.Errorf("expected amount 12500, got %.0f", entry.Amount)
	}

	history, err := store.LoanHistory(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}

	success, err := flow.Success(context.Background(), "s1")
	if err != nil {
		t.Fatalf("success failed: %v", err)
	}
	if success.Amount != 12500 || success.TermDays != 21 {
		t.Errorf("unexpected success view: %+v", success)
	}
	if expected := now.AddDate(0, 0, 21); !success.DueDate.Equal(expected) {
		t.Errorf("expected due date %v, got %v", expected, success.DueDate)
	}

	// The attempt was consumed; the member now qualifies for the top tier.
	view, err = flow.Qualification(context.Background(), "s1")
	if err != nil {
		t.Fatalf("second qualification failed: %v", err)
	}
	if !view.ExistingMember {
		t.Errorf("member with disbursed loan should be existing")
	}
	if view.Selected != nil {
		t.Errorf("new attempt should start without a selection")
	}
	if _, _, err := flow.SelectPlan(context.Background(), "s1", 1550); err != nil {
		t.Errorf("existing member should select the top tier: %v", err)
	}
}
