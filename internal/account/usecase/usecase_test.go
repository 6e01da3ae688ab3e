package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/account/lifecycle"
	"github.com/jzmart/account/internal/pkg/config"
	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/goroutine"
	"github.com/jzmart/account/internal/pkg/hash"
	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/jwt"
	"github.com/jzmart/account/internal/pkg/storage"
	"github.com/jzmart/account/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testConfig = `
modules:
  account:
    avatar:
      bucket: avatars-test
      max_size_bytes: 200000
      size_px: 32
`

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct {
	mu sync.Mutex
	n  int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

type staticUUID string

func (s staticUUID) Generate() string { return string(s) }

type fakeRepo struct {
	mu       sync.Mutex
	users    map[int64]*entity.User
	password map[int64]string
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*entity.User{}, password: map[int64]string{}}
}

func (r *fakeRepo) add(u entity.User, hashed string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
	r.password[u.ID] = hashed
}

func (r *fakeRepo) byEmail(email string) *entity.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (r *fakeRepo) ExistsUserByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	return r.byEmail(email) != nil, nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byEmail(email); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetUserCredentialByEmail(_ context.Context, email string) (*entity.UserCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byEmail(email); u != nil {
		return &entity.UserCredential{ID: u.ID, Email: u.Email, Password: r.password[u.ID]}, nil
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetUserCredentialByID(_ context.Context, id int64) (*entity.UserCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &entity.UserCredential{ID: u.ID, Email: u.Email, Password: r.password[u.ID]}, nil
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) CreateUser(_ context.Context, nu entity.NewUser) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEmail(nu.Email) != nil {
		return nil, goerror.ErrConflict
	}
	u := &entity.User{ID: nu.ID, Name: nu.Name, Email: nu.Email, Role: nu.Role.Ensure()}
	r.users[u.ID] = u
	r.password[u.ID] = nu.Password
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) UpdateUserPassword(_ context.Context, email, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byEmail(email)
	if u == nil {
		return goerror.ErrNotFound
	}
	r.password[u.ID] = hashed
	return nil
}

func (r *fakeRepo) UpdateUserPasswordByID(_ context.Context, id int64, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return goerror.ErrNotFound
	}
	r.password[id] = hashed
	return nil
}

func (r *fakeRepo) UpdateUserProfile(_ context.Context, id int64, p entity.UserProfile) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Name, p.Name)
	set(&u.Phone, p.Phone)
	set(&u.City, p.City)
	set(&u.Address, p.Address)
	set(&u.Interest, p.Interest)
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) UpdateUserAvatar(_ context.Context, id int64, url, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", goerror.ErrNotFound
	}
	old := u.AvatarKey
	u.Avatar, u.AvatarKey = url, key
	return old, nil
}

func (r *fakeRepo) DeleteUser(_ context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", goerror.ErrNotFound
	}
	delete(r.users, id)
	return u.AvatarKey, nil
}

type fakeOTP struct {
	issued    []string
	issueErr  error
	verifyErr error
	consumed  []int64
	code      string
}

func (f *fakeOTP) Issue(_ context.Context, email string, purpose entity.Purpose) error {
	if f.issueErr != nil {
		return f.issueErr
	}
	f.issued = append(f.issued, purpose.String()+"|"+email)
	return nil
}

func (f *fakeOTP) Verify(_ context.Context, email string, purpose entity.Purpose, code string) (*entity.OTP, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if code != f.code {
		return nil, lifecycle.ErrInvalidOtp
	}
	return &entity.OTP{ID: 77, Email: email, Purpose: purpose}, nil
}

func (f *fakeOTP) Consume(_ context.Context, o *entity.OTP) error {
	f.consumed = append(f.consumed, o.ID)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = data
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data)), ContentType: opts.ContentType}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, bucket+"/"+key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func (f *fakeStorage) Close() error { return nil }

type fixture struct {
	uc      *Usecase
	repo    *fakeRepo
	otp     *fakeOTP
	storage *fakeStorage
	jwt     jwt.JWT
	gm      *goroutine.Manager
	argon   *hash.Argon2id
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := fixedClock{now: time.Now().Truncate(time.Second)}
	tok, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		TTL:    30 * 24 * time.Hour,
		Clock:  clk,
		UUID:   staticUUID("jti"),
	})
	require.NoError(t, err)

	f := &fixture{
		repo:    newFakeRepo(),
		otp:     &fakeOTP{code: "123456"},
		storage: &fakeStorage{objects: map[string][]byte{}},
		jwt:     tok,
		gm:      goroutine.NewManager(4),
		argon:   hash.NewArgon2idWithConfig(hash.Argon2idConfig{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1}),
	}

	f.uc = New(Dependency{
		RepoDB:     f.repo,
		OTP:        f.otp,
		Validator:  v,
		Config:     cfg,
		Storage:    f.storage,
		Argon2ID:   f.argon,
		Bcrypt:     hash.NewBcrypt(bcrypt.MinCost, ""),
		UID:        &seqID{n: 100},
		UUID:       staticUUID("0190-avatar"),
		Clock:      clk,
		JWT:        tok,
		Instrument: instrument.NewNoop(),
		Goroutine:  f.gm,
	})
	return f
}

func (f *fixture) seedUser(t *testing.T, id int64, email, password string) {
	t.Helper()
	hashed, err := f.argon.Hash(password)
	require.NoError(t, err)
	f.repo.add(entity.User{ID: id, Name: "Seed", Email: email, Role: entity.RoleUser}, string(hashed))
}

func authed(id int64, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, UserEmail: email})
}

// assertBusiness checks the goerror code and user-facing message.
func assertBusiness(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
	if msg != "" {
		assert.Equal(t, msg, gerr.Msg())
	}
}

func userFixture(id int64, email string) entity.User {
	return entity.User{ID: id, Name: "Legacy", Email: email, Role: entity.RoleUser}
}
