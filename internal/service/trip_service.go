package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

const approvedChildRequired = "Trips become available once at least one of your children has an approved application."

type tripGateway interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	RegisterForTrip(ctx context.Context, tripID string, registration gateway.TripRegistration) error
}

type paymentChecker interface {
	CheckPayment(ctx context.Context, studentID, tripID string) (bool, error)
}

// TripService builds the parent trips screen and runs mock payments.
type TripService struct {
	gateway         tripGateway
	payments        paymentChecker
	children        childrenGateway
	notices         NoticeFactory
	processingDelay time.Duration
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewTripService constructs the service. processingDelay is the cosmetic
// pause after a successful registration; zero disables it.
func NewTripService(gw tripGateway, payments paymentChecker, children childrenGateway, notices NoticeFactory, processingDelay time.Duration, validate *validator.Validate, logger *zap.Logger) *TripService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripService{
		gateway:         gw,
		payments:        payments,
		children:        children,
		notices:         notices,
		processingDelay: processingDelay,
		validator:       validate,
		logger:          logger,
	}
}

// Screen builds the trips screen. Without an approved child the screen is
// the fixed warning state and no trip or payment endpoint is called at all.
func (s *TripService) Screen(ctx context.Context, parentID string) (*dto.TripsScreen, error) {
	children, err := s.children.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	approved := approvedChildren(children)
	if len(approved) == 0 {
		return &dto.TripsScreen{Blocked: true, BlockedReason: approvedChildRequired}, nil
	}

	trips, err := s.gateway.ListTrips(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.TripView, len(trips))
	var wg sync.WaitGroup
	for i, trip := range trips {
		statuses := make([]dto.ChildTripStatus, len(approved))
		for j, child := range approved {
			statuses[j] = dto.ChildTripStatus{
				StudentID:  child.StudentID,
				FullName:   child.DisplayName(),
				Grade:      child.Grade,
				Eligible:   EligibleForTrip(child.Grade, trip.EligibleGrades),
				Registered: trip.HasRegistered(child.StudentID),
			}
			if !statuses[j].Eligible {
				continue
			}
			wg.Add(1)
			go func(status *dto.ChildTripStatus, studentID, tripID string) {
				defer wg.Done()
				paid, err := s.payments.CheckPayment(ctx, studentID, tripID)
				if err != nil {
					// An unreadable payment record renders as unpaid.
					s.logger.Warn("payment check failed",
						zap.String("student_id", studentID),
						zap.String("trip_id", tripID),
						zap.Error(err))
					return
				}
				status.HasPaid = paid
			}(&statuses[j], child.StudentID, trip.TripID)
		}
		views[i] = dto.TripView{Trip: trip, Children: statuses}
	}
	wg.Wait()

	return &dto.TripsScreen{Trips: views}, nil
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3}$`)
)

// Pay runs the mock payment: validate the form, register the student on
// the trip, then hold for the configured cosmetic delay before returning
// the receipt. No payment gateway is ever involved.
func (s *TripService) Pay(ctx context.Context, parentID, tripID string, req dto.PaymentRequest) (*dto.PaymentReceipt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student and payment method are required")
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment method")
	}
	if models.IsCardMethod(req.PaymentMethod) {
		if msg := cardProblem(req); msg != "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, msg)
		}
	}

	children, err := s.children.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	child := findStudent(children, req.StudentID)
	if child == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "that student is not one of your children")
	}
	if child.Status != models.StudentApproved {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only approved students can register for trips")
	}

	trip, err := s.gateway.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "this trip is currently on hold")
	}
	if !EligibleForTrip(child.Grade, trip.EligibleGrades) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "this trip is not open to the student's grade")
	}

	if err := s.gateway.RegisterForTrip(ctx, tripID, gateway.TripRegistration{
		StudentID:     req.StudentID,
		ParentID:      parentID,
		PaymentMethod: req.PaymentMethod,
	}); err != nil {
		return nil, err
	}

	if err := s.processingPause(ctx); err != nil {
		return nil, err
	}

	return &dto.PaymentReceipt{
		TripID:        tripID,
		StudentID:     req.StudentID,
		PaymentMethod: req.PaymentMethod,
		Amount:        trip.Price,
		Notice:        s.notices.New("Payment received. " + child.DisplayName() + " is registered for " + trip.Title),
	}, nil
}

// processingPause is the cosmetic "processing" delay. It respects request
// cancellation; the registration has already happened by the time it runs.
func (s *TripService) processingPause(ctx context.Context) error {
	if s.processingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.processingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return appErrors.Wrap(ctx.Err(), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "request cancelled")
	}
}

func cardProblem(req dto.PaymentRequest) string {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(number) {
		return "card number must be 16 digits"
	}
	if !cardExpiryPattern.MatchString(req.CardExpiry) {
		return "expiry must be MM/YY"
	}
	if !cardCVVPattern.MatchString(req.CardCVV) {
		return "CVV must be 3 digits"
	}
	return ""
}

func validPaymentMethod(method string) bool {
	for _, m := range models.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func approvedChildren(children []models.Student) []models.Student {
	approved := make([]models.Student, 0, len(children))
	for _, child := range children {
		if child.Status == models.StudentApproved {
			approved = append(approved, child)
		}
	}
	return approved
}

func findStudent(children []models.Student, studentID string) *models.Student {
	for i := range children {
		if children[i].StudentID == studentID {
			return &children[i]
		}
	}
	return nil
}
