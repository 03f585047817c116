package dataset

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

type CustomerRepository interface {
	ListCustomers() ([]*domain.Customer, error)
	GetCustomerByID(customerID string) (*domain.Customer, error)
	Reload() error
	Status() domain.DatasetStatus
}

type customers struct {
	list []*domain.Customer
	byID map[string]*domain.Customer
}

type customerRepository struct {
	path string
	memo *memo[*customers]
}

func NewCustomerRepository(path string) CustomerRepository {
	r := &customerRepository{path: path}
	r.memo = newMemo(r.load)
	return r
}

func (r *customerRepository) load() (*customers, error) {
	t, err := readCSVFile(r.path)
	if err != nil {
		return nil, err
	}

	return buildCustomers(t)
}

func buildCustomers(t *table) (*customers, error) {
	if missing := t.missing(domain.CustomerColumns); len(missing) > 0 {
		return nil, errors.Wrap(ErrMissingColumns, strings.Join(missing, ", "))
	}

	c := &customers{
		list: make([]*domain.Customer, 0, len(t.rows)),
		byID: make(map[string]*domain.Customer, len(t.rows)),
	}

	duplicated := 0
	for _, row := range t.rows {
		customer := domain.NewCustomer(t.record(row))
		if customer.CustomerID == "" {
			continue
		}
		// igual ao filtro .iloc[0]: a primeira linha do id vence
		if _, exists := c.byID[customer.CustomerID]; exists {
			duplicated++
			continue
		}
		c.byID[customer.CustomerID] = customer
		c.list = append(c.list, customer)
	}

	if duplicated > 0 {
		logrus.WithField("duplicated_rows", duplicated).Warn("dataset: customer_id duplicado, mantendo a primeira linha")
	}

	return c, nil
}

func (r *customerRepository) ListCustomers() ([]*domain.Customer, error) {
	s, err := r.memo.get()
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Customer, len(s.value.list))
	copy(out, s.value.list)
	return out, nil
}

// GetCustomerByID devolve nil, nil quando o cliente não existe
func (r *customerRepository) GetCustomerByID(customerID string) (*domain.Customer, error) {
	s, err := r.memo.get()
	if err != nil {
		return nil, err
	}

	return s.value.byID[customerID], nil
}

func (r *customerRepository) Reload() error {
	s, err := r.memo.reload()
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"dataset": "customers",
		"rows":    len(s.value.list),
	}).Info("dataset: clientes recarregados")

	return nil
}

func (r *customerRepository) Status() domain.DatasetStatus {
	status := domain.DatasetStatus{Name: "customers", Path: r.path}
	if s := r.memo.peek(); s != nil {
		loadedAt := s.loadedAt
		status.Loaded = true
		status.Rows = len(s.value.list)
		status.LoadedAt = &loadedAt
	}
	return status
}
