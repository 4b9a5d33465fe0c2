package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/notifier"
	"bjustcoin/internal/pagination"
	"bjustcoin/internal/repository"
)

// SubmitApplicationInput carries a new purchase request. Applicant identity
// comes from the authenticated user and is snapshotted onto the row.
type SubmitApplicationInput struct {
	Phone   string
	Mobile  string
	IsAgree bool
	Address string
	Tokens  decimal.Decimal
}

// ApplicationPage is one page of applications.
type ApplicationPage struct {
	Data []model.Application `json:"data"`
	Next int                 `json:"next"`
}

// HolderPage is one page of the holder registry.
type HolderPage struct {
	Data []model.Holder `json:"data"`
	Next int            `json:"next"`
}

// ApplicationService manages the purchase-application lifecycle end to end,
// including whitelist provisioning on approval and the holder registry.
type ApplicationService interface {
	Submit(ctx context.Context, applicant *model.User, in SubmitApplicationInput) (*model.Application, error)
	Approve(ctx context.Context, actor *model.User, applicationID uint, tokens decimal.Decimal, stage int16) error
	Reject(ctx context.Context, actor *model.User, applicationID uint) error
	ListPending(ctx context.Context, page int, limit *int) (*ApplicationPage, error)
	ListApproved(ctx context.Context, page int, limit *int) (*ApplicationPage, error)
	ListRejected(ctx context.Context, page int, limit *int) (*ApplicationPage, error)

	SyncHolders(ctx context.Context, actor *model.User, holders []model.Holder) error
	EditHolder(ctx context.Context, actor *model.User, id uint, tokens, stage string) error
	DeleteHolder(ctx context.Context, actor *model.User, id uint) error
	ListHolders(ctx context.Context, page int, limit *int) (*HolderPage, error)
}

type applicationService struct {
	appRepo    repository.ApplicationRepository
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	holderRepo repository.HolderRepository
	audit      AuditService
	mail       notifier.Notifier
	opsEmail   string
	baseURL    string
}

// NewApplicationService creates a new application service.
func NewApplicationService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	holderRepo repository.HolderRepository,
	audit AuditService,
	mail notifier.Notifier,
	opsEmail, baseURL string,
) ApplicationService {
	return &applicationService{
		appRepo:    appRepo,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		holderRepo: holderRepo,
		audit:      audit,
		mail:       mail,
		opsEmail:   opsEmail,
		baseURL:    baseURL,
	}
}

// notify sends mail after the triggering mutation committed. It is detached
// from the request context: a cancelled request or a failed send never
// affects the already-committed state.
func (s *applicationService) notify(name, email, subject, body string) {
	go func() {
		if err := s.mail.Send(context.Background(), name, email, subject, body); err != nil {
			log.Printf("notify %s: %v", email, err)
		}
	}()
}

// Submit records a pending application, snapshotting the applicant's
// current name and email onto the row.
func (s *applicationService) Submit(ctx context.Context, applicant *model.User, in SubmitApplicationInput) (*model.Application, error) {
	app := &model.Application{
		FirstName: applicant.FirstName,
		LastName:  applicant.LastName,
		Email:     applicant.Email,
		Phone:     in.Phone,
		Mobile:    in.Mobile,
		IsAgree:   in.IsAgree,
		Address:   in.Address,
		Tokens:    in.Tokens,
		Status:    model.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("%w: create application: %v", apperrors.ErrInternal, err)
	}

	if err := s.audit.Append(ctx, applicant.ID, "submitted an application for the purchase of tokens", nil); err != nil {
		return nil, err
	}

	fullName := applicant.FirstName + " " + applicant.LastName
	s.notify("Operations", s.opsEmail,
		"Bjustcoin - New token purchase application",
		"<p>"+fullName+" ("+applicant.Email+") submitted an application for "+in.Tokens.String()+" tokens.</p>")
	s.notify(fullName, applicant.Email,
		"Bjustcoin - Application received",
		"<p>We received your application and will review it shortly.</p>")

	return app, nil
}

// Approve transitions a pending application to approved, stores the grant,
// provisions the applicant's whitelist entry and mails the applicant.
// Approving a missing or already-terminal application fails without
// re-provisioning.
func (s *applicationService) Approve(ctx context.Context, actor *model.User, applicationID uint, tokens decimal.Decimal, stage int16) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: find application: %v", apperrors.ErrInternal, err)
	}
	if app.Status.Terminal() {
		return apperrors.ErrInvalidState
	}

	updated, err := s.appRepo.UpdateStatusIfPending(ctx, applicationID, model.ApplicationStatusApproved, tokens, stage)
	if err != nil {
		return fmt.Errorf("%w: approve application: %v", apperrors.ErrInternal, err)
	}
	if !updated {
		// a concurrent reviewer got there first
		return apperrors.ErrInvalidState
	}

	// The whitelist grant keys off the live user behind the snapshotted
	// email. The entry insert is idempotent.
	applicant, err := s.userRepo.FindByEmail(ctx, app.Email)
	if err == nil {
		if err := s.walletRepo.CreateWhitelistEntry(ctx, applicant.ID, stage); err != nil {
			return fmt.Errorf("%w: provision whitelist: %v", apperrors.ErrInternal, err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: find applicant: %v", apperrors.ErrInternal, err)
	}

	if err := s.audit.Append(ctx, actor.ID, "approved a token purchase application", applicantID(applicant)); err != nil {
		return err
	}

	s.notify(app.FirstName+" "+app.LastName, app.Email,
		"Bjustcoin - Application approved",
		"<p>Your application was approved for "+tokens.String()+" tokens.</p>"+
			`<p><a href="`+s.baseURL+`/account">Proceed to your account</a></p>`)
	return nil
}

// Reject transitions a pending application to rejected. No provisioning.
func (s *applicationService) Reject(ctx context.Context, actor *model.User, applicationID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: find application: %v", apperrors.ErrInternal, err)
	}
	if app.Status.Terminal() {
		return apperrors.ErrInvalidState
	}

	updated, err := s.appRepo.UpdateStatusIfPending(ctx, applicationID, model.ApplicationStatusRejected, app.Tokens, app.TokenType)
	if err != nil {
		return fmt.Errorf("%w: reject application: %v", apperrors.ErrInternal, err)
	}
	if !updated {
		return apperrors.ErrInvalidState
	}

	if err := s.audit.Append(ctx, actor.ID, "rejected a token purchase application", nil); err != nil {
		return err
	}

	s.notify(app.FirstName+" "+app.LastName, app.Email,
		"Bjustcoin - Application update",
		"<p>Unfortunately your application was not approved at this time.</p>")
	return nil
}

func applicantID(u *model.User) *uint {
	if u == nil {
		return nil
	}
	return &u.ID
}

func (s *applicationService) listByStatus(ctx context.Context, status model.ApplicationStatus, page int, limit *int) (*ApplicationPage, error) {
	lim := pagination.Limit(limit)
	apps, err := s.appRepo.ListByStatus(ctx, status, lim, pagination.Offset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", apperrors.ErrInternal, err)
	}
	hasMore, err := s.appRepo.ExistsByStatusAtOffset(ctx, status, pagination.ProbeOffset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: probe applications: %v", apperrors.ErrInternal, err)
	}
	return &ApplicationPage{Data: apps, Next: pagination.Next(page, hasMore)}, nil
}

func (s *applicationService) ListPending(ctx context.Context, page int, limit *int) (*ApplicationPage, error) {
	return s.listByStatus(ctx, model.ApplicationStatusPending, page, limit)
}

func (s *applicationService) ListApproved(ctx context.Context, page int, limit *int) (*ApplicationPage, error) {
	return s.listByStatus(ctx, model.ApplicationStatusApproved, page, limit)
}

func (s *applicationService) ListRejected(ctx context.Context, page int, limit *int) (*ApplicationPage, error) {
	return s.listByStatus(ctx, model.ApplicationStatusRejected, page, limit)
}

// SyncHolders reconciles a registry snapshot by address.
func (s *applicationService) SyncHolders(ctx context.Context, actor *model.User, holders []model.Holder) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	if err := s.holderRepo.UpsertByAddress(ctx, holders); err != nil {
		return fmt.Errorf("%w: sync holders: %v", apperrors.ErrInternal, err)
	}
	return s.audit.Append(ctx, actor.ID, "synchronized the holder registry", nil)
}

func (s *applicationService) EditHolder(ctx context.Context, actor *model.User, id uint, tokens, stage string) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	if err := s.holderRepo.Update(ctx, id, tokens, stage); err != nil {
		return fmt.Errorf("%w: edit holder: %v", apperrors.ErrInternal, err)
	}
	return nil
}

func (s *applicationService) DeleteHolder(ctx context.Context, actor *model.User, id uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	if err := s.holderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete holder: %v", apperrors.ErrInternal, err)
	}
	return nil
}

func (s *applicationService) ListHolders(ctx context.Context, page int, limit *int) (*HolderPage, error) {
	lim := pagination.Limit(limit)
	holders, err := s.holderRepo.List(ctx, lim, pagination.Offset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: list holders: %v", apperrors.ErrInternal, err)
	}
	hasMore, err := s.holderRepo.ExistsAtOffset(ctx, pagination.ProbeOffset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: probe holders: %v", apperrors.ErrInternal, err)
	}
	return &HolderPage{Data: holders, Next: pagination.Next(page, hasMore)}, nil
}
