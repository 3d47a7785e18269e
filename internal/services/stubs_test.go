package services

import (
	"context"
	"sync"

	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/google/uuid"
)

type stubUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	byEmail map[string]*models.User

	roleErr   error
	createErr error
	roleCalls int
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		users:   make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (s *stubUserStore) add(user *models.User) {
	s.users[user.ID] = user
	s.byEmail[user.Email] = user
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(user)
	return nil
}

func (s *stubUserStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) RoleByID(ctx context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleCalls++
	if s.roleErr != nil {
		return "", s.roleErr
	}
	user, ok := s.users[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return user.Role, nil
}

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (s *stubTokenStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *stubTokenStore) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[hash]
	if !ok || token.Revoked {
		return nil, repository.ErrNotFound
	}
	return token, nil
}

func (s *stubTokenStore) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.tokens {
		if token.ID == id {
			token.Revoked = true
		}
	}
	return nil
}

func (s *stubTokenStore) RevokeByHash(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.tokens[hash]; ok {
		token.Revoked = true
	}
	return nil
}

type stubServiceStore struct {
	byType     map[string]*models.Service
	byPattern  map[string][]models.Service
	typeErr    error
	patternErr error
}

func newStubServiceStore() *stubServiceStore {
	return &stubServiceStore{
		byType:    make(map[string]*models.Service),
		byPattern: make(map[string][]models.Service),
	}
}

func (s *stubServiceStore) ServiceByType(ctx context.Context, serviceType string) (*models.Service, error) {
	if s.typeErr != nil {
		return nil, s.typeErr
	}
	svc, ok := s.byType[serviceType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

func (s *stubServiceStore) ServicesByNamePattern(ctx context.Context, pattern string) ([]models.Service, error) {
	if s.patternErr != nil {
		return nil, s.patternErr
	}
	return s.byPattern[pattern], nil
}

func (s *stubServiceStore) ListServices(ctx context.Context) ([]models.Service, error) {
	var all []models.Service
	for _, svc := range s.byType {
		all = append(all, *svc)
	}
	return all, nil
}

func (s *stubServiceStore) CreateService(ctx context.Context, svc *models.Service) error {
	s.byType[svc.ServiceType] = svc
	return nil
}

func (s *stubServiceStore) UpdateService(ctx context.Context, svc *models.Service) error {
	s.byType[svc.ServiceType] = svc
	return nil
}

func (s *stubServiceStore) DeleteService(ctx context.Context, id uuid.UUID) error {
	for key, svc := range s.byType {
		if svc.ID == id {
			delete(s.byType, key)
		}
	}
	return nil
}

type stubOrderStore struct {
	mu          sync.Mutex
	orders      map[string]*models.Order
	deviceInfos []*models.DeviceInfo

	createOrderErr  error
	createDeviceErr error
	createCalls     int
	deviceCalls     int
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{orders: make(map[string]*models.Order)}
}

func (s *stubOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createOrderErr != nil {
		return s.createOrderErr
	}
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

func (s *stubOrderStore) OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderStore) UpdateOrderStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	return nil
}

func (s *stubOrderStore) CreateDeviceInfo(ctx context.Context, info *models.DeviceInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceCalls++
	if s.createDeviceErr != nil {
		return s.createDeviceErr
	}
	s.deviceInfos = append(s.deviceInfos, info)
	return nil
}
