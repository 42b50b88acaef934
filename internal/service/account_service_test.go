package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/marginalia-api/internal/models"
)

type mockAccountStore struct {
	accounts  map[string]*models.Account
	createErr error
}

func (m *mockAccountStore) Create(ctx context.Context, acc *models.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.accounts == nil {
		m.accounts = make(map[string]*models.Account)
	}
	m.accounts[acc.ID] = acc
	return nil
}

func (m *mockAccountStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return m.accounts[id], nil
}

func (m *mockAccountStore) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.accounts[id]; !ok {
		return false, nil
	}
	delete(m.accounts, id)
	return true, nil
}

type mockProfileStore struct {
	profiles  map[string]*models.Profile
	createErr error
}

func (m *mockProfileStore) Create(ctx context.Context, p *models.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.profiles == nil {
		m.profiles = make(map[string]*models.Profile)
	}
	m.profiles[p.AccountID] = p
	return nil
}

func (m *mockProfileStore) FindByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	return m.profiles[accountID], nil
}

func (m *mockProfileStore) DeleteByAccountID(ctx context.Context, accountID string) error {
	delete(m.profiles, accountID)
	return nil
}

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func validSignup() models.CreateAccountRequest {
	return models.CreateAccountRequest{
		Email:    "ada@example.com",
		Handle:   "adalovelace",
		Name:     "Ada Lovelace",
		Password: "long-enough-password",
	}
}

func TestAccountCreate(t *testing.T) {
	accounts := &mockAccountStore{}
	profiles := &mockProfileStore{}
	svc := NewAccountService(accounts, profiles, plainHasher{}, nil, nil, AccountConfig{})

	id, err := svc.Create(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	acc := accounts.accounts[id]
	require.NotNil(t, acc)
	assert.Equal(t, "hashed:long-enough-password", acc.PasswordHash)

	profile := profiles.profiles[id]
	require.NotNil(t, profile)
	assert.Equal(t, "Ada Lovelace", profile.Name)
}

func TestAccountCreateRejectsShortPassword(t *testing.T) {
	svc := NewAccountService(&mockAccountStore{}, &mockProfileStore{}, plainHasher{}, nil, nil, AccountConfig{MinPasswordLength: 8})

	req := validSignup()
	req.Password = "short"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAccountCreateRejectsInvalidEmail(t *testing.T) {
	svc := NewAccountService(&mockAccountStore{}, &mockProfileStore{}, plainHasher{}, nil, nil, AccountConfig{})

	req := validSignup()
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAccountCreateConflict(t *testing.T) {
	accounts := &mockAccountStore{createErr: errors.New("duplicate key")}
	svc := NewAccountService(accounts, &mockProfileStore{}, plainHasher{}, nil, nil, AccountConfig{})

	_, err := svc.Create(context.Background(), validSignup())
	require.Error(t, err)
	assertStatus(t, err, http.StatusConflict)
}

func TestAccountRetrieve(t *testing.T) {
	accounts := &mockAccountStore{}
	profiles := &mockProfileStore{}
	svc := NewAccountService(accounts, profiles, plainHasher{}, nil, nil, AccountConfig{})

	id, err := svc.Create(context.Background(), validSignup())
	require.NoError(t, err)

	info, err := svc.Retrieve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, "adalovelace", info.Handle)
	assert.Equal(t, "Ada Lovelace", info.Name)
}

func TestAccountRetrieveUnknown(t *testing.T) {
	svc := NewAccountService(&mockAccountStore{}, &mockProfileStore{}, plainHasher{}, nil, nil, AccountConfig{})

	_, err := svc.Retrieve(context.Background(), "missing")
	require.Error(t, err)
	assertStatus(t, err, http.StatusNotFound)
}

func TestAccountRemove(t *testing.T) {
	accounts := &mockAccountStore{}
	profiles := &mockProfileStore{}
	svc := NewAccountService(accounts, profiles, plainHasher{}, nil, nil, AccountConfig{})

	id, err := svc.Create(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), id))
	assert.Empty(t, accounts.accounts)
	assert.Empty(t, profiles.profiles)

	err = svc.Remove(context.Background(), id)
	require.Error(t, err)
	assertStatus(t, err, http.StatusNotFound)
}
