package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository with a unique username rule.
type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, exists := f.users[user.Username]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.users[user.Username] = stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func validOnboarding() OnboardingData {
	return OnboardingData{
		Username: "lifter",
		Password: "secretpass1",
		Age:      30,
		HeightCm: 180,
		WeightKg: 82.5,
		Gender:   "male",
		BodyType: 4,
		Goal:     5,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, validOnboarding())
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, user.ID)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")

	token, loggedIn, err := svc.Login(ctx, "lifter", "secretpass1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	// The token carries the user's ID and verifies against the same secret.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "workout-tracker", claims.Issuer)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, validOnboarding())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validOnboarding())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	bad := validOnboarding()
	bad.Goal = 9
	_, err := svc.Register(ctx, bad)
	assert.Error(t, err)

	bad = validOnboarding()
	bad.Age = 0
	_, err = svc.Register(ctx, bad)
	assert.Error(t, err)

	assert.Empty(t, repo.users)
}

func TestLoginWrongCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, validOnboarding())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "lifter", "wrongpass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody", "secretpass1")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
