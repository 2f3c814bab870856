package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/logging"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/cookies"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

// fakeAccounts implements AuthService and UserService in memory. Passwords
// are stored as given.
type fakeAccounts struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User

	failWith error
}

func newFakeAccounts(users ...*models.User) *fakeAccounts {
	f := &fakeAccounts{users: map[int64]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeAccounts) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == in.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	f.nextID++
	now := time.Now().UTC()
	u := &models.User{ID: f.nextID, Name: in.Name, Email: in.Email, Password: in.Password, Role: role, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeAccounts) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			if u.Password != password {
				return nil, common.ErrInvalidPassword
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccounts) GetAll(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAccounts) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAccounts) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		for _, other := range f.users {
			if other.ID != id && other.Email == *upd.Email {
				return nil, common.ErrorAlreadyExists
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.users, id)
	cp := *u
	return &cp, nil
}

var (
	adminUser = &models.User{ID: 1, Name: "Admin", Email: "admin@x.com", Password: "adminpass", Role: models.RoleAdmin}
	bobUser   = &models.User{ID: 2, Name: "Bob", Email: "bob@x.com", Password: "bobpass", Role: models.RoleUser}
	carolUser = &models.User{ID: 3, Name: "Carol", Email: "carol@x.com", Password: "carolpass", Role: models.RoleUser}
)

func seededAccounts() *fakeAccounts {
	a, b, c := *adminUser, *bobUser, *carolUser
	return newFakeAccounts(&a, &b, &c)
}

func newTestServer(t *testing.T, accounts *fakeAccounts) *HTTPServer {
	t.Helper()
	tm := auth.NewTokenManager([]byte(testSecret), time.Hour)
	jar := cookies.New(false, time.Hour)
	return NewHTTPServer("127.0.0.1:0", logging.Nop(), accounts, accounts, tm, jar)
}

func tokenFor(t *testing.T, s *HTTPServer, u *models.User) string {
	t.Helper()
	token, err := s.tokens.Sign(auth.IdentityOf(u))
	require.NoError(t, err)
	return token
}

type request struct {
	method string
	path   string
	body   any
	raw    string
	bearer string
	cookie string
}

func do(t *testing.T, s *HTTPServer, r request) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	switch {
	case r.raw != "":
		buf = bytes.NewBufferString(r.raw)
	case r.body != nil:
		b, err := json.Marshal(r.body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	default:
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(r.method, r.path, buf)
	req.Header.Set("Content-Type", "application/json")
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	if r.cookie != "" {
		req.AddCookie(&http.Cookie{Name: common.TokenCookieName, Value: r.cookie})
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.TokenCookieName {
			return c
		}
	}
	return nil
}
