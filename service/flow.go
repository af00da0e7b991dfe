package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"mwananchi-loans/domain"
	"mwananchi-loans/repository"
)

// State identifies one screen of the application flow. Transitions are
// strictly forward; entering a gated state without its precondition
// redirects to the gating state instead.
type State string

const (
	StateEligibility State = "eligibility"
	StateLogin       State = "login"
	StateSignup      State = "signup"
	StateAuthorizing State = "authorizing"
	StateQualify     State = "qualify"
	StateApply       State = "apply"
	StateSuccess     State = "success"
)

var (
	// ErrLoginRequired means the step needs a stored user record.
	ErrLoginRequired = errors.New("login required")
	// ErrQualifyRequired means the step needs a qualification or draft.
	ErrQualifyRequired = errors.New("qualification required")
	// ErrNoSelection means plan confirmation was attempted with no plan chosen.
	ErrNoSelection = errors.New("no savings plan selected")
	// ErrNotAcknowledged means the savings payment was not acknowledged.
	ErrNotAcknowledged = errors.New("savings payment not acknowledged")
	// ErrLoginFailed is the generic authentication mismatch. Unknown user and
	// wrong credential are deliberately indistinguishable.
	ErrLoginFailed = errors.New("invalid phone number or password")
)

// SignupInput is the validated signup profile. The password reaches the flow
// already checked for confirmation equality.
type SignupInput struct {
	Name          string
	County        string
	Phone         string
	NationalID    string
	Gender        string
	DateOfBirth   string
	MaritalStatus string
	Password      string
}

// QualificationView is everything the qualify screen renders.
type QualificationView struct {
	User                domain.UserRecord    `json:"user"`
	QualifiedLoanAmount float64              `json:"qualifiedLoanAmount"`
	Plans               []domain.SavingsPlan `json:"plans"`
	ExistingMember      bool                 `json:"existingMember"`
	Selected            *domain.SavingsPlan  `json:"selected,omitempty"`
}

// PaymentInstruction is the out-of-band savings payment the user must
// acknowledge before the draft is persisted. The system never verifies the
// payment.
type PaymentInstruction struct {
	PaybillNumber string  `json:"paybillNumber"`
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
}

// ReviewSummary is the apply screen: the draft plus the derived breakdown.
type ReviewSummary struct {
	User      domain.UserRecord            `json:"user"`
	Draft     domain.LoanApplicationDraft  `json:"draft"`
	Breakdown domain.DisbursementBreakdown `json:"breakdown"`
	TermDays  int                          `json:"termDays"`
}

// SuccessView is the terminal screen after disbursement.
type SuccessView struct {
	Amount        float64   `json:"amount"`
	TermDays      int       `json:"termDays"`
	DueDate       time.Time `json:"dueDate"`
	PaybillNumber string    `json:"paybillNumber"`
}

// Flow is the application state machine. All persistence goes through the
// injected session store; the flow itself holds no per-session state.
type Flow struct {
	store       repository.SessionStore
	underwriter Underwriter
	catalog     *Catalog
	calc        *Calculator
	paybill     string
	now         func() time.Time
}

func NewFlow(
	store repository.SessionStore,
	underwriter Underwriter,
	catalog *Catalog,
	calc *Calculator,
	paybill string,
) *Flow {
	return &Flow{
		store:       store,
		underwriter: underwriter,
		catalog:     catalog,
		calc:        calc,
		paybill:     paybill,
		now:         time.Now,
	}
}

// RequireUser is the precondition shared by every post-login state.
func (f *Flow) RequireUser(ctx context.Context, sessionID string) (domain.UserRecord, error) {
	user, ok, err := f.store.GetUser(ctx, sessionID)
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return domain.UserRecord{}, ErrLoginRequired
	}
	return user, nil
}

// SubmitEligibility stores the questionnaire and creates the user record,
// deriving a display name from the last four digits of the phone number when
// no prior name exists. The qualification ceiling is NOT drawn here; that
// happens once the qualify step is entered.
func (f *Flow) SubmitEligibility(ctx context.Context, sessionID string, data domain.EligibilityData) (domain.UserRecord, error) {
	if err := f.store.PutEligibility(ctx, sessionID, data); err != nil {
		return domain.UserRecord{}, fmt.Errorf("store eligibility: %w", err)
	}

	user, ok, err := f.store.GetUser(ctx, sessionID)
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("read user: %w", err)
	}
	if !ok || user.Name == "" {
		user.Name = "User " + lastFour(data.Phone)
	}
	user.Phone = data.Phone
	if err := f.store.PutUser(ctx, sessionID, user); err != nil {
		return domain.UserRecord{}, fmt.Errorf("store user: %w", err)
	}
	return user, nil
}

// Signup creates the full user record and initializes an empty loan history.
func (f *Flow) Signup(ctx context.Context, sessionID string, input SignupInput) (domain.UserRecord, error) {
	user := domain.UserRecord{
		Name:          input.Name,
		Phone:         input.Phone,
		NationalID:    input.NationalID,
		County:        input.County,
		Gender:        input.Gender,
		DateOfBirth:   input.DateOfBirth,
		MaritalStatus: input.MaritalStatus,
		PasswordHash:  hashPassword(input.Password),
	}
	if err := f.store.PutUser(ctx, sessionID, user); err != nil {
		return domain.UserRecord{}, fmt.Errorf("store user: %w", err)
	}
	if err := f.store.InitLoanHistory(ctx, sessionID); err != nil {
		return domain.UserRecord{}, fmt.Errorf("init loan history: %w", err)
	}
	return user, nil
}

// Login matches the phone against the stored user record. The password is
// accepted but not verified; this is mocked auth, kept intentionally.
func (f *Flow) Login(ctx context.Context, sessionID, phone string) (domain.UserRecord, error) {
	user, ok, err := f.store.GetUser(ctx, sessionID)
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("read user: %w", err)
	}
	if !ok || user.Phone != phone {
		return domain.UserRecord{}, ErrLoginFailed
	}
	return user, nil
}

// Qualification enters the qualify state. The first entry of an attempt
// draws the ceiling through the underwriter and persists it; subsequent
// reads reuse the stored attempt so the ceiling stays stable.
func (f *Flow) Qualification(ctx context.Context, sessionID string) (QualificationView, error) {
	user, err := f.RequireUser(ctx, sessionID)
	if err != nil {
		return QualificationView{}, err
	}

	q, ok, err := f.store.GetQualification(ctx, sessionID)
	if err != nil {
		return QualificationView{}, fmt.Errorf("read qualification: %w", err)
	}
	if !ok {
		eligibility, _, err := f.store.GetEligibility(ctx, sessionID)
		if err != nil {
			return QualificationView{}, fmt.Errorf("read eligibility: %w", err)
		}
		q = domain.Qualification{QualifiedLoanAmount: f.underwriter.Evaluate(eligibility)}
		if err := f.store.PutQualification(ctx, sessionID, q); err != nil {
			return QualificationView{}, fmt.Errorf("store qualification: %w", err)
		}
	}

	existing, err := f.existingMember(ctx, sessionID)
	if err != nil {
		return QualificationView{}, err
	}

	return QualificationView{
		User:                user,
		QualifiedLoanAmount: q.QualifiedLoanAmount,
		Plans:               f.catalog.PlansFor(q.QualifiedLoanAmount),
		ExistingMember:      existing,
		Selected:            q.Selected,
	}, nil
}

// SelectPlan chooses a savings tier for the current attempt. A restricted
// tier without prior history is rejected and the stored selection is left
// unchanged.
func (f *Flow) SelectPlan(ctx context.Context, sessionID string, savings float64) (domain.SavingsPlan, PaymentInstruction, error) {
	user, err := f.RequireUser(ctx, sessionID)
	if err != nil {
		return domain.SavingsPlan{}, PaymentInstruction{}, err
	}

	q, ok, err := f.store.GetQualification(ctx, sessionID)
	if err != nil {
		return domain.SavingsPlan{}, PaymentInstruction{}, fmt.Errorf("read qualification: %w", err)
	}
	if !ok {
		return domain.SavingsPlan{}, PaymentInstruction{}, ErrQualifyRequired
	}

	existing, err := f.existingMember(ctx, sessionID)
	if err != nil {
		return domain.SavingsPlan{}, PaymentInstruction{}, err
	}

	plan, err := f.catalog.Select(savings, q.QualifiedLoanAmount, existing)
	if err != nil {
		return domain.SavingsPlan{}, PaymentInstruction{}, err
	}

	q.Selected = &plan
	if err := f.store.PutQualification(ctx, sessionID, q); err != nil {
		return domain.SavingsPlan{}, PaymentInstruction{}, fmt.Errorf("store qualification: %w", err)
	}

	return plan, PaymentInstruction{
		PaybillNumber: f.paybill,
		AccountNumber: user.Phone,
		Amount:        plan.Savings,
	}, nil
}

// ConfirmPlan persists the loan application draft once the user has
// acknowledged the savings payment instruction. The draft is single-slot and
// overwrites any prior one.
func (f *Flow) ConfirmPlan(ctx context.Context, sessionID string, acknowledged bool) (domain.LoanApplicationDraft, error) {
	if _, err := f.RequireUser(ctx, sessionID); err != nil {
		return domain.LoanApplicationDraft{}, err
	}

	q, ok, err := f.store.GetQualification(ctx, sessionID)
	if err != nil {
		return domain.LoanApplicationDraft{}, fmt.Errorf("read qualification: %w", err)
	}
	if !ok {
		return domain.LoanApplicationDraft{}, ErrQualifyRequired
	}
	if q.Selected == nil {
		return domain.LoanApplicationDraft{}, ErrNoSelection
	}
	if !acknowledged {
		return domain.LoanApplicationDraft{}, ErrNotAcknowledged
	}

	draft := domain.LoanApplicationDraft{
		QualifiedLoanAmount: q.QualifiedLoanAmount,
		Savings:             q.Selected.Savings,
		LoanLimit:           q.Selected.LoanLimit,
		ExistingOnly:        q.Selected.ExistingOnly,
	}
	if err := f.store.PutDraft(ctx, sessionID, draft); err != nil {
		return domain.LoanApplicationDraft{}, fmt.Errorf("store draft: %w", err)
	}
	return draft, nil
}

// Review enters the apply state: it derives the disbursement breakdown from
// the persisted draft. Reading it repeatedly yields the same figures.
func (f *Flow) Review(ctx context.Context, sessionID string) (ReviewSummary, error) {
	user, err := f.RequireUser(ctx, sessionID)
	if err != nil {
		return ReviewSummary{}, err
	}

	draft, ok, err := f.store.GetDraft(ctx, sessionID)
	if err != nil {
		return ReviewSummary{}, fmt.Errorf("read draft: %w", err)
	}
	if !ok {
		return ReviewSummary{}, ErrQualifyRequired
	}

	breakdown, err := f.calc.Breakdown(draft.LoanLimit)
	if err != nil {
		return ReviewSummary{}, err
	}

	return ReviewSummary{
		User:      user,
		Draft:     draft,
		Breakdown: breakdown,
		TermDays:  TermDays(draft.LoanLimit),
	}, nil
}

// Disburse is "Apply Now": it appends the disbursed loan to the history and
// consumes the qualification attempt. The draft stays for the success read.
func (f *Flow) Disburse(ctx context.Context, sessionID string) (domain.LoanHistoryEntry, error) {
	if _, err := f.RequireUser(ctx, sessionID); err != nil {
		return domain.LoanHistoryEntry{}, err
	}

	draft, ok, err := f.store.GetDraft(ctx, sessionID)
	if err != nil {
		return domain.LoanHistoryEntry{}, fmt.Errorf("read draft: %w", err)
	}
	if !ok {
		return domain.LoanHistoryEntry{}, ErrQualifyRequired
	}

	now := f.now()
	entry := domain.LoanHistoryEntry{
		ID:     now.UnixMilli(),
		Amount: draft.LoanLimit,
		Date:   now,
		Status: domain.LoanStatusDisbursed,
	}
	if err := f.store.AppendLoan(ctx, sessionID, entry); err != nil {
		return domain.LoanHistoryEntry{}, fmt.Errorf("append loan: %w", err)
	}
	if err := f.store.DeleteQualification(ctx, sessionID); err != nil {
		return domain.LoanHistoryEntry{}, fmt.Errorf("clear qualification: %w", err)
	}
	return entry, nil
}

// Success renders the terminal screen from the last draft. The state has no
// precondition: with no draft it falls back to zero figures, as the flow has
// always done.
func (f *Flow) Success(ctx context.Context, sessionID string) (SuccessView, error) {
	draft, ok, err := f.store.GetDraft(ctx, sessionID)
	if err != nil {
		return SuccessView{}, fmt.Errorf("read draft: %w", err)
	}

	view := SuccessView{TermDays: ShortTermDays, PaybillNumber: f.paybill}
	if ok {
		view.Amount = draft.LoanLimit
		view.TermDays = TermDays(draft.LoanLimit)
	}
	view.DueDate = f.now().AddDate(0, 0, view.TermDays)
	return view, nil
}

func (f *Flow) existingMember(ctx context.Context, sessionID string) (bool, error) {
	history, err := f.store.LoanHistory(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("read loan history: %w", err)
	}
	return len(history) > 0, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func lastFour(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
