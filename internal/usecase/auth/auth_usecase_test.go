package auth

import (
	"context"
	"testing"

	"github.com/place222/social-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrUserAlreadyExists
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func TestRegisterLoginVerifyRoundtrip(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret)

	registered, err := uc.Register(context.Background(), &RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Name:     "Alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice@example.com", registered.User.Email)
	assert.NotEqual(t, "correct horse battery", registered.User.PasswordHash)

	loggedIn, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	userID, err := uc.VerifyToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testSecret)

	req := &RegisterRequest{Email: "bob@example.com", Name: "Bob", Password: "password123"}
	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testSecret)

	_, err := uc.Register(context.Background(), &RegisterRequest{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "carol@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testSecret)

	_, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testSecret)

	_, err := uc.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthUseCase(newFakeUserRepo(), testSecret)
	resp, err := issuer.Register(context.Background(), &RegisterRequest{
		Email:    "dave@example.com",
		Name:     "Dave",
		Password: "password123",
	})
	require.NoError(t, err)

	verifier := NewAuthUseCase(newFakeUserRepo(), "another-secret-also-32-characters!!")
	_, err = verifier.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
