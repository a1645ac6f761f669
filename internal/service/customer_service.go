package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/broker"
	"crm-service/internal/errs"
	"crm-service/internal/models"
	"crm-service/internal/util"
	"crm-service/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerStore is the persistence surface the customer service needs.
// *store.Store satisfies it.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}

// CustomerService handles customer business logic
type CustomerService struct {
	store  CustomerStore
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewCustomerService creates a new customer service. events may be nil
// when no broker is configured.
func NewCustomerService(store CustomerStore, events *broker.EventPublisher) *CustomerService {
	return &CustomerService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// CustomerInput carries the fields of a customer to create
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CreateCustomer validates the input, persists the customer and returns
// it. Any validation or uniqueness failure leaves nothing persisted.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	if err := validate.Email(input.Email); err != nil {
		util.CustomerCreateFailuresTotal.WithLabelValues("invalid_email").Inc()
		return nil, err
	}
	if err := validate.Phone(input.Phone); err != nil {
		util.CustomerCreateFailuresTotal.WithLabelValues("invalid_phone").Inc()
		return nil, err
	}

	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := validate.Customer(customer); err != nil {
		util.CustomerCreateFailuresTotal.WithLabelValues("invalid_fields").Inc()
		return nil, err
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		if errs.IsUniqueness(err) {
			util.CustomerCreateFailuresTotal.WithLabelValues("duplicate_email").Inc()
		} else {
			util.CustomerCreateFailuresTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.CustomersCreatedTotal.Inc()
	s.logger.Info("Customer created", zap.Int64("customer_id", customer.ID))

	if s.events != nil {
		event := &models.CustomerCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCustomerCreated,
				Timestamp: time.Now(),
			},
			CustomerID: customer.ID,
			Name:       customer.Name,
			Email:      customer.Email,
		}
		if err := s.events.PublishCustomerCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish CustomerCreated event", zap.Error(err))
		}
	}

	return customer, nil
}

// BulkCreateCustomers processes each row independently: failures are
// collected as "Row N: <message>" strings with 1-based indexes and never
// abort the batch, so the result can be a partial success.
func (s *CustomerService) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) ([]models.Customer, []string) {
	ctx, span := util.StartSpan(ctx, "CustomerService.BulkCreateCustomers")
	defer span.End()

	created := []models.Customer{}
	rowErrors := []string{}

	for i, input := range inputs {
		customer, err := s.CreateCustomer(ctx, input)
		if err != nil {
			util.BulkCustomerRowsTotal.WithLabelValues("failed").Inc()
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+1, err))
			continue
		}
		util.BulkCustomerRowsTotal.WithLabelValues("created").Inc()
		created = append(created, *customer)
	}

	s.logger.Info("Bulk customer creation finished",
		zap.Int("created", len(created)),
		zap.Int("failed", len(rowErrors)))

	return created, rowErrors
}

// ListCustomers retrieves customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx, filter)
}

// CountCustomers returns the total number of customers
func (s *CustomerService) CountCustomers(ctx context.Context) (int64, error) {
	return s.store.CountCustomers(ctx)
}
