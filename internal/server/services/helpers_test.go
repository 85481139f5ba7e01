package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/dbx"
	"github.com/pzubov/products-api/internal/server/models"
	productsrepo "github.com/pzubov/products-api/internal/server/repositories/products"
	usersrepo "github.com/pzubov/products-api/internal/server/repositories/users"
)

// --- in-memory fakes ---

// memUsersRepo mimics the SQL repository semantics, including the
// compare-and-clear behavior of ClearResetToken.
type memUsersRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.User
	failWith error // when set, every call fails with this error

	// clearReturnsZero makes ClearResetToken report zero updated rows,
	// simulating a concurrent consume winning the conditional update.
	clearReturnsZero bool
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byID: map[string]*models.User{}}
}

func (f *memUsersRepo) add(u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
}

func (f *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.add(u)
	return u, nil
}

func (f *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) SetResetToken(ctx context.Context, id string, token string, expiresAt time.Time) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *memUsersRepo) ClearResetToken(ctx context.Context, token string) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearReturnsZero {
		return 0, nil
	}
	var n int64
	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.ResetToken = nil
			u.ResetTokenExpiresAt = nil
			n++
		}
	}
	return n, nil
}

func (f *memUsersRepo) UpdatePasswordDigest(ctx context.Context, id string, digest string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordDigest = digest
	return nil
}

type memProductsRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.Product
	failWith error
}

func newMemProductsRepo() *memProductsRepo {
	return &memProductsRepo{byID: map[string]*models.Product{}}
}

func (f *memProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byID[p.ID] = &cp
	return p, nil
}

func (f *memProductsRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *memProductsRepo) Update(ctx context.Context, p *models.Product) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *memProductsRepo) Delete(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *memProductsRepo) Count(ctx context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *memProductsRepo) List(ctx context.Context, sortCol string, order string, limit int, offset int) ([]*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*models.Product, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch sortCol {
		case "title":
			less = all[i].Title < all[j].Title
		case "price":
			less = all[i].Price < all[j].Price
		default:
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if order == "desc" {
			return !less
		}
		return less
	})

	if offset >= len(all) {
		return []*models.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

type fakeRepoManager struct {
	u *memUsersRepo
	p *memProductsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newMemUsersRepo(), p: newMemProductsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.p }

// newSQLMockDB returns a DB handle whose Begin/Commit succeed, for services
// that wrap work in dbx.WithTx.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}
