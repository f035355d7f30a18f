package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
)

// BookingStore in-memory хранилище бронирований с проверкой версии при записи
type BookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	saves    int

	// BeforeSave вызывается перед проверкой версии, позволяет вклинить конкурентную запись
	BeforeSave func(b *domain.Booking)
	// Err если задана, возвращается из всех методов
	Err error
}

// NewBookingStore создает хранилище с начальными бронированиями
func NewBookingStore(bookings ...*domain.Booking) *BookingStore {
	s := &BookingStore{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		s.Put(b)
	}
	return s
}

// Put кладёт копию бронирования без проверки версии
func (s *BookingStore) Put(b *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b.Clone()
}

// Get возвращает копию бронирования или nil
func (s *BookingStore) Get(id int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	return b.Clone()
}

// Saves количество успешных записей
func (s *BookingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// GetByID implements the booking repository contract
func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	b := s.Get(id)
	if b == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

// Save implements the booking repository contract
func (s *BookingStore) Save(_ context.Context, b *domain.Booking, expectedVersion int64) (*domain.Booking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.BeforeSave != nil {
		s.BeforeSave(b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.bookings[b.ID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if current.Version != expectedVersion {
		return nil, fmt.Errorf("%w: booking id=%d expected version %d", bookingRepo.ErrVersionConflict, b.ID, expectedVersion)
	}

	saved := b.Clone()
	saved.Version = current.Version + 1
	saved.UpdatedAt = time.Now()
	s.bookings[b.ID] = saved
	s.saves++

	return saved.Clone(), nil
}

// FindOverlapping implements the booking repository contract
func (s *BookingStore) FindOverlapping(_ context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.IsActive() || !b.IsAssignedTo(employeeID) || !b.Overlaps(start, end) {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		result = append(result, b.Clone())
	}
	sortByStart(result)
	return result, nil
}

// GetByEmployeeWithFilter implements the booking repository contract
func (s *BookingStore) GetByEmployeeWithFilter(_ context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.IsAssignedTo(filter.EmployeeID) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if !filter.To.IsZero() && !b.StartTime.Before(filter.To) {
			continue
		}
		if !filter.From.IsZero() && !b.EndTime.After(filter.From) {
			continue
		}
		result = append(result, b.Clone())
	}
	sortByStart(result)
	return result, nil
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}

// Catalog in-memory каталог услуг
type Catalog struct {
	mu       sync.Mutex
	services map[int64]*domain.Service
}

// NewCatalog создает каталог с услугами
func NewCatalog(services ...*domain.Service) *Catalog {
	c := &Catalog{services: make(map[int64]*domain.Service)}
	for _, svc := range services {
		c.services[svc.ID] = svc
	}
	return c
}

// GetService implements the service catalog contract
func (c *Catalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	svc, ok := c.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	copied := *svc
	return &copied, nil
}

// Directory in-memory справочник сотрудников
type Directory struct {
	mu        sync.Mutex
	employees map[int64]*domain.Employee
	calls     int
}

// NewDirectory создает справочник с сотрудниками
func NewDirectory(employees ...*domain.Employee) *Directory {
	d := &Directory{employees: make(map[int64]*domain.Employee)}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	return d
}

// Put добавляет или заменяет сотрудника
func (d *Directory) Put(e *domain.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[e.ID] = e
}

// Calls количество обращений к справочнику
func (d *Directory) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// GetEmployee implements the employee directory contract
func (d *Directory) GetEmployee(_ context.Context, id int64) (*domain.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	e, ok := d.employees[id]
	if !ok {
		return nil, staffservice.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}
