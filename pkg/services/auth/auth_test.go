package auth

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/de-tools/booking-atlas/pkg/models/store"
)

type mockAccountStore struct {
	mock.Mock
}

func (m *mockAccountStore) Get(ctx context.Context, adminID string) (*store.AccountRow, error) {
	args := m.Called(ctx, adminID)
	if row := args.Get(0); row != nil {
		return row.(*store.AccountRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestVerifyPasswordFormats(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	require.Len(t, hashed, bcryptHashLength)

	cases := []struct {
		name           string
		stored         string
		candidate      string
		allowPlaintext bool
		want           bool
	}{
		{"bcrypt match", string(hashed), "hunter2", false, true},
		{"bcrypt mismatch", string(hashed), "hunter3", false, false},
		{"md5 match", md5Hex("hunter2"), "hunter2", false, true},
		{"md5 mismatch", md5Hex("hunter2"), "hunter3", false, false},
		{"sha256 match", sha256Hex("hunter2"), "hunter2", false, true},
		{"sha256 mismatch", sha256Hex("hunter2"), "hunter3", false, false},
		{"plaintext blocked", "hunter2", "hunter2", false, false},
		{"plaintext allowed", "hunter2", "hunter2", true, true},
		{"plaintext mismatch", "hunter2", "hunter3", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := verifyPassword(tc.stored, tc.candidate, tc.allowPlaintext)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerifyPasswordReportsScheme(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	_, scheme := verifyPassword(string(hashed), "hunter2", false)
	assert.Equal(t, schemeBcrypt, scheme)

	_, scheme = verifyPassword(md5Hex("hunter2"), "hunter2", false)
	assert.Equal(t, schemeMD5, scheme)

	_, scheme = verifyPassword("hunter2", "hunter2", true)
	assert.Equal(t, schemePlaintext, scheme)
}

func account(password, status string) *store.AccountRow {
	row := &store.AccountRow{AdminID: "ops", Password: password}
	if status != "" {
		row.Status = sql.NullString{String: status, Valid: true}
	}
	return row
}

func newTestService(accounts *mockAccountStore) *service {
	return &service{
		accounts: accounts,
		settings: Settings{JWTSecret: "test-secret", TokenTTL: time.Hour},
		now:      func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	accounts := &mockAccountStore{}
	accounts.On("Get", mock.Anything, "ops").Return(account(sha256Hex("hunter2"), "active"), nil)

	svc := newTestService(accounts)

	token, err := svc.Login(context.Background(), "ops", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}

func TestLoginRejections(t *testing.T) {
	accounts := &mockAccountStore{}
	accounts.On("Get", mock.Anything, "ghost").Return(nil, nil)
	accounts.On("Get", mock.Anything, "ops").Return(account(sha256Hex("hunter2"), ""), nil)
	accounts.On("Get", mock.Anything, "gone").Return(account(sha256Hex("hunter2"), "suspended"), nil)

	svc := newTestService(accounts)

	_, err := svc.Login(context.Background(), "ghost", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown account looks like a bad password")

	_, err = svc.Login(context.Background(), "ops", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "gone", "hunter2")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestVerifyExpiredToken(t *testing.T) {
	accounts := &mockAccountStore{}
	accounts.On("Get", mock.Anything, "ops").Return(account(sha256Hex("hunter2"), "active"), nil)

	svc := newTestService(accounts)

	token, err := svc.Login(context.Background(), "ops", "hunter2")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC) }
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	accounts := &mockAccountStore{}
	accounts.On("Get", mock.Anything, "ops").Return(account(sha256Hex("hunter2"), "active"), nil)

	svc := newTestService(accounts)
	token, err := svc.Login(context.Background(), "ops", "hunter2")
	require.NoError(t, err)

	other := newTestService(accounts)
	other.settings.JWTSecret = "different"
	_, err = other.Verify(token)
	assert.Error(t, err)
}
