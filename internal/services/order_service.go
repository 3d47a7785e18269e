package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/drmnef/storefront/internal/forms"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/google/uuid"
)

// ServiceTypeAppSubscription marks the catalog category whose orders carry a
// device-identifier side record.
const ServiceTypeAppSubscription = "app_subscription_annual"

var (
	// ErrOrderPersist wraps insert failures; nothing was saved and the
	// caller may retry the same submission.
	ErrOrderPersist = errors.New("فشل إرسال الطلب")
	// ErrOrderNotFound is returned by Track for unknown ids and for
	// id/email mismatches alike, so tracking cannot probe foreign orders.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus rejects admin transitions outside the fixed set.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrSubmissionInFlight means this form instance already has a
	// submission running.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// OrderService turns validated submissions into persisted orders.
type OrderService struct {
	orders repository.OrderStore
	prefix string

	// injectable for deterministic tests
	now     func() time.Time
	randInt func(n int) int
}

func NewOrderService(orders repository.OrderStore, prefix string) *OrderService {
	return &OrderService{
		orders:  orders,
		prefix:  prefix,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// generateOrderID builds ids of the form <prefix><unix-ms><0-999>.
// Collisions are treated as acceptably unlikely for this workload; the
// primary-key constraint backstops the remainder.
func (s *OrderService) generateOrderID() string {
	return s.prefix + strconv.FormatInt(s.now().UnixMilli(), 10) + strconv.Itoa(s.randInt(1000))
}

// Submit runs the submission pipeline: validate, generate an id, persist the
// order, then best-effort persist the device-identifier side record. The
// side record never rolls back or fails an already-persisted order.
func (s *OrderService) Submit(ctx context.Context, svc *models.Service, sub *forms.Submission, userID *uuid.UUID) (*models.Order, error) {
	if err := forms.Validate(svc, sub); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            s.generateOrderID(),
		UserID:        userID,
		CustomerName:  sub.FullName,
		CustomerEmail: sub.Email,
		CustomerPhone: optional(sub.Phone),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Notes:         sub.Notes,
		PaymentMethod: sub.PaymentMethod,
		Status:        models.StatusAwaitingPayment,
		TotalAmount:   svc.Price,
		OrderDate:     s.now().UTC(),
	}

	// Only values the service actually asks for are copied; everything
	// else stays nil so nothing leaks between service types.
	for _, key := range svc.SpecificFields {
		val := sub.FieldValue(key)
		switch forms.KindOf(key) {
		case forms.FieldUDID:
			order.UDID = &val
		case forms.FieldSerialNumber:
			order.SerialNumber = &val
		case forms.FieldIMEI:
			order.IMEI = &val
		case forms.FieldDeviceModel:
			order.DeviceModel = &val
		case forms.FieldStorePackage:
			order.StorePackage = &val
		case forms.FieldProductID:
			order.ProductID = &val
		case forms.FieldSubscriptionPackage:
			order.SubscriptionPackage = &val
		}
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersist, err)
	}

	if svc.ServiceType == ServiceTypeAppSubscription && order.UDID != nil && *order.UDID != "" {
		info := &models.DeviceInfo{OrderID: order.ID, UDID: *order.UDID}
		if err := s.orders.CreateDeviceInfo(ctx, info); err != nil {
			slog.Warn("failed to save device info for order", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}

// Track returns the order with the given id when the supplied email matches
// the one on the order.
func (s *OrderService) Track(ctx context.Context, id, email string) (*models.Order, error) {
	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(order.CustomerEmail, strings.TrimSpace(email)) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// OrdersForUser lists a client's own orders, newest first.
func (s *OrderService) OrdersForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders.OrdersByUser(ctx, userID)
}

// ListAll returns every order for the admin dashboard.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListOrders(ctx)
}

// UpdateStatus performs a manual, administrator-driven status transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	err := s.orders.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// submitState tracks one form instance through
// idle -> submitting -> success, or back to idle on error.
type submitState int

const (
	stateIdle submitState = iota
	stateSubmitting
	stateSuccess
)

// Submitter guards a single form instance: at most one in-flight submission,
// and once a submission succeeds, re-invoking Submit returns the already
// persisted order without issuing a second persistence call. Errors are not
// sticky; the caller may correct the form and retry.
type Submitter struct {
	svc *OrderService

	mu    sync.Mutex
	state submitState
	done  *models.Order
}

func (s *OrderService) NewSubmitter() *Submitter {
	return &Submitter{svc: s}
}

// Submit drives the state machine around OrderService.Submit.
// The repeated return is true when the call hit an already-successful form
// instance and no new order was created.
func (f *Submitter) Submit(ctx context.Context, svc *models.Service, sub *forms.Submission, userID *uuid.UUID) (order *models.Order, repeated bool, err error) {
	f.mu.Lock()
	switch f.state {
	case stateSuccess:
		done := f.done
		f.mu.Unlock()
		return done, true, nil
	case stateSubmitting:
		f.mu.Unlock()
		return nil, false, ErrSubmissionInFlight
	}
	f.state = stateSubmitting
	f.mu.Unlock()

	order, err = f.svc.Submit(ctx, svc, sub, userID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = stateIdle
		return nil, false, err
	}
	f.state = stateSuccess
	f.done = order
	return order, false, nil
}
