package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// fakeRepo is an in-memory Repository with the same contract as the MySQL
// implementation, including duplicate-key conversion on Create and Update.
type fakeRepo struct {
	users  map[uint]*User
	nextID uint

	// createErr, when set, is returned by Create after the pre-check has
	// passed, simulating a concurrent insert winning the race.
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeRepo) FindAll(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeHasher makes hashing observable without bcrypt's cost.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (fakeHasher) Compare(hashed, plaintext string) error {
	if hashed != "hashed:"+plaintext {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeHasher{}), repo
}

func strptr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and assigns default role", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{
			Email:    "a@x.com",
			Name:     "Ana",
			Password: "PlainSecret1!",
		})
		require.NoError(t, err)

		assert.NotZero(t, created.ID)
		assert.NotEqual(t, "PlainSecret1!", created.Password)
		assert.Equal(t, "hashed:PlainSecret1!", created.Password)
		assert.Equal(t, RoleOrdinary, created.Role)
	})

	t.Run("keeps explicit role", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{
			Email:    "admin@x.com",
			Name:     "Root",
			Password: "PlainSecret1!",
			Role:     RoleAdministrator,
		})
		require.NoError(t, err)
		assert.Equal(t, RoleAdministrator, created.Role)
	})

	t.Run("duplicate email fails without creating a record", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p1"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &User{Email: "a@x.com", Name: "Bea", Password: "p2"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
		assert.Contains(t, apperrors.GetAppError(err).Message, "a@x.com")
		assert.Len(t, repo.users, 1)
	})

	t.Run("store constraint violation is the second line of defense", func(t *testing.T) {
		svc, repo := newTestService()

		// Pre-check passes (store is empty) but the insert loses a race.
		repo.createErr = apperrors.ErrEmailDuplicate

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("does not mutate the candidate", func(t *testing.T) {
		svc, _ := newTestService()

		candidate := &User{Email: "a@x.com", Name: "Ana", Password: "plain"}
		_, err := svc.Create(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, "plain", candidate.Password)
	})
}

func TestLookups(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip by id", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "plain"})
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.Name, got.Name)
		assert.Equal(t, created.Role, got.Role)
		assert.NotEqual(t, "plain", got.Password)
	})

	t.Run("get by id not found", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(ctx, 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Contains(t, apperrors.GetAppError(err).Message, "42")
	})

	t.Run("get by email exact match", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		got, err := svc.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)

		_, err = svc.GetByEmail(ctx, "A@X.COM")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("list all in store order", func(t *testing.T) {
		svc, _ := newTestService()

		for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
			_, err := svc.Create(ctx, &User{Email: email, Name: "N", Password: "p"})
			require.NoError(t, err)
		}

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "a@x.com", all[0].Email)
		assert.Equal(t, "c@x.com", all[2].Email)
	})
}

func TestDeleteByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record", func(t *testing.T) {
		svc, repo := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteByEmail(ctx, "a@x.com"))
		assert.Empty(t, repo.users)
	})

	t.Run("unknown email fails not found", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.DeleteByEmail(ctx, "ghost@x.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Contains(t, apperrors.GetAppError(err).Message, "ghost@x.com")
	})

	t.Run("second delete is strict, not idempotent", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteByEmail(ctx, "a@x.com"))

		err = svc.DeleteByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUpdateByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id fails not found", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.UpdateByID(ctx, 7, Patch{Name: strptr("New")})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("name-only patch leaves everything else unchanged", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "plain"})
		require.NoError(t, err)

		updated, err := svc.UpdateByID(ctx, created.ID, Patch{Name: strptr("Ana Maria")})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.Name)
		assert.Equal(t, created.Email, updated.Email)
		assert.Equal(t, created.Password, updated.Password)
		assert.Equal(t, created.Role, updated.Role)

		stored, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", stored.Name)
		assert.Equal(t, created.Password, stored.Password)
	})

	t.Run("email change to a free address", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		updated, err := svc.UpdateByID(ctx, created.ID, Patch{Email: strptr("new@x.com")})
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", updated.Email)

		_, err = svc.GetByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("re-submitting the current email is not a collision", func(t *testing.T) {
		svc, _ := newTestService()

		created, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		updated, err := svc.UpdateByID(ctx, created.ID, Patch{Email: strptr("a@x.com")})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", updated.Email)
	})

	t.Run("colliding email rejects the whole patch", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, &User{Email: "taken@x.com", Name: "Bea", Password: "p"})
		require.NoError(t, err)
		created, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "p"})
		require.NoError(t, err)

		_, err = svc.UpdateByID(ctx, created.ID, Patch{
			Name:  strptr("Renamed"),
			Email: strptr("taken@x.com"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

		// Atomicity: the name must not have been applied either.
		stored, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", stored.Name)
		assert.Equal(t, "a@x.com", stored.Email)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "Secret1!"})
		require.NoError(t, err)

		u, err := svc.Authenticate(ctx, "a@x.com", "Secret1!")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "Secret1!"})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Authenticate(ctx, "ghost@x.com", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

// TestLifecycleScenario walks a user from creation through update to deletion.
func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	a, err := svc.Create(ctx, &User{Email: "a@x.com", Name: "Ana", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, RoleOrdinary, a.Role)

	_, err = svc.Create(ctx, &User{Email: "a@x.com", Name: "Impostor", Password: "Other1!"})
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

	got, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.UpdateByID(ctx, a.ID, Patch{Email: strptr("a@x.com")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByEmail(ctx, "a@x.com"))

	_, err = svc.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
