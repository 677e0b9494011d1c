package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := EnsureSchema(context.Background(), db, false); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		Name:              "Acme",
		Code:              "ACM",
		ResponsiblePerson: "J. Doe",
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustCreateCustomer(t *testing.T, repo *CustomerRepository) *domain.Customer {
	t.Helper()
	c := testCustomer()
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func mustCreateProject(t *testing.T, repo *ProjectRepository, customerID int64) *domain.Project {
	t.Helper()
	p := &domain.Project{
		Description:       "Warehouse rollout",
		ResponsiblePerson: "M. Mustermann",
		StartDate:         time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:        customerID,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestCustomerRepository_CreateGetRoundtrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	created := mustCreateCustomer(t, repo)
	if created.ID == 0 || created.Version != 1 {
		t.Fatalf("unexpected created customer: %+v", created)
	}

	got, err := repo.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	want := testCustomer()
	if got.Name != want.Name || got.Code != want.Code || got.ResponsiblePerson != want.ResponsiblePerson {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.StartDate.Equal(want.StartDate) {
		t.Fatalf("start date mismatch: %v != %v", got.StartDate, want.StartDate)
	}
	if got.Projects == nil || len(got.Projects) != 0 {
		t.Fatalf("expected empty project list, got %v", got.Projects)
	}
}

func TestCustomerRepository_MonotonicIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	first := mustCreateCustomer(t, repo)
	second := mustCreateCustomer(t, repo)
	if second.ID <= first.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", first.ID, second.ID)
	}
}

func TestCustomerRepository_Get_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	if _, err := repo.Get(context.Background(), 42); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_Update_VersionGuard(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	c := mustCreateCustomer(t, repo)

	c.Name = "Acme GmbH"
	if err := repo.Update(context.Background(), c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if c.Version != 2 {
		t.Fatalf("expected version 2 after update, got %d", c.Version)
	}

	stale := testCustomer()
	stale.ID = c.ID
	stale.Version = 1
	if err := repo.Update(context.Background(), stale); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale version, got %v", err)
	}

	got, err := repo.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Name != "Acme GmbH" || got.Version != 2 {
		t.Fatalf("stale update must not overwrite, got %+v", got)
	}
}

func TestCustomerRepository_Delete_CascadesToProjects(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	projects := NewProjectRepository(db)

	c := mustCreateCustomer(t, customers)
	p1 := mustCreateProject(t, projects, c.ID)
	p2 := mustCreateProject(t, projects, c.ID)

	other := mustCreateCustomer(t, customers)
	keep := mustCreateProject(t, projects, other.ID)

	if err := customers.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	for _, id := range []int64{p1.ID, p2.ID} {
		if _, err := projects.Get(context.Background(), id); !errors.Is(err, domain.ErrProjectNotFound) {
			t.Fatalf("project %d should have been cascade-deleted, got %v", id, err)
		}
	}

	remaining, err := projects.List(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Fatalf("cascade removed the wrong rows: %+v", remaining)
	}
}

func TestCustomerRepository_Delete_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	if err := repo.Delete(context.Background(), 7); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_List_AttachesProjects(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	projects := NewProjectRepository(db)

	c := mustCreateCustomer(t, customers)
	mustCreateProject(t, projects, c.ID)
	mustCreateProject(t, projects, c.ID)

	list, err := customers.List(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(list) != 1 || len(list[0].Projects) != 2 {
		t.Fatalf("expected one customer with two projects, got %+v", list)
	}
	for _, p := range list[0].Projects {
		if p.Customer != nil {
			t.Fatalf("embedded projects must not carry a customer back-reference")
		}
	}
}

func TestProjectRepository_GetAttachesCustomer(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	projects := NewProjectRepository(db)

	c := mustCreateCustomer(t, customers)
	p := mustCreateProject(t, projects, c.ID)

	got, err := projects.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Customer == nil || got.Customer.ID != c.ID || got.Customer.Name != c.Name {
		t.Fatalf("expected owning customer attached, got %+v", got.Customer)
	}
	if !got.EndDate.Equal(p.EndDate) {
		t.Fatalf("end date mismatch: %v != %v", got.EndDate, p.EndDate)
	}
}

func TestProjectRepository_Create_RejectsDanglingCustomer(t *testing.T) {
	db := openTestDB(t)
	projects := NewProjectRepository(db)

	p := &domain.Project{Description: "orphan", CustomerID: 999}
	if err := projects.Create(context.Background(), p); err == nil {
		t.Fatalf("expected foreign key violation for dangling customer reference")
	}
}

func TestProjectRepository_Update_VersionGuard(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	projects := NewProjectRepository(db)

	c := mustCreateCustomer(t, customers)
	p := mustCreateProject(t, projects, c.ID)

	p.Description = "Warehouse rollout phase 2"
	if err := projects.Update(context.Background(), p); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stale := *p
	stale.Version = 1
	if err := projects.Update(context.Background(), &stale); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	accounts := DefaultAccounts("Admin@123", "Write@123", "Read@123")

	for i := 0; i < 2; i++ {
		if err := Seed(context.Background(), repo, accounts, zerolog.Nop()); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 seed accounts, got %d", count)
	}

	writer, err := repo.FindByUsername(context.Background(), "Write")
	if err != nil {
		t.Fatalf("find Write account: %v", err)
	}
	if !writer.HasRole(domain.RoleWrite) || !writer.HasRole(domain.RoleRead) {
		t.Fatalf("Write account must hold Write and Read, got %v", writer.Roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(writer.PasswordHash), []byte("Write@123")); err != nil {
		t.Fatalf("stored hash does not match seed password: %v", err)
	}
}

func TestEnsureSchema_ResetDropsData(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	mustCreateCustomer(t, customers)

	if err := EnsureSchema(context.Background(), db, true); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	list, err := customers.List(context.Background())
	if err != nil {
		t.Fatalf("list after reset: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("reset must drop all rows, got %d", len(list))
	}
}
