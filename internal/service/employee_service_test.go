package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amxn-2/Employee-Management/internal/service"
)

const (
	ownerAlice int64 = 101
	ownerBob   int64 = 202
)

func newEmployeeService(t *testing.T) (*service.EmployeeService, *memoryEmployeeRepo) {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	repo := &memoryEmployeeRepo{}
	return service.NewEmployeeService(repo, node, zap.NewNop()), repo
}

func createInput(email string) service.CreateEmployeeInput {
	salary := decimal.NewFromInt(50000)
	return service.CreateEmployeeInput{
		Name:   "Bob",
		Email:  email,
		Salary: &salary,
	}
}

func TestCreateAppliesDefaultsAndStampsOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	created, err := svc.Create(ctx, ownerAlice, createInput("B@X.com"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, ownerAlice, created.StudentID)
	require.Equal(t, "b@x.com", created.Email, "email should be normalized")
	require.Equal(t, "Employee", created.Role)
	require.Equal(t, "Active", created.Status)
	require.False(t, created.DateOfJoining.IsZero())
	require.True(t, created.Salary.Equal(decimal.NewFromInt(50000)))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)
	negative := decimal.NewFromInt(-1)

	cases := map[string]service.CreateEmployeeInput{
		"empty name":      {Name: "  ", Email: "b@x.com"},
		"bad email":       {Name: "Bob", Email: "not-an-email"},
		"negative salary": {Name: "Bob", Email: "b@x.com", Salary: &negative},
		"bad status":      {Name: "Bob", Email: "b@x.com", Status: "Retired"},
	}
	for name, in := range cases {
		_, err := svc.Create(ctx, ownerAlice, in)
		var svcErr *service.Error
		require.ErrorAs(t, err, &svcErr, name)
		require.Equal(t, service.CodeValidationFailed, svcErr.Code, name)
		require.Equal(t, http.StatusBadRequest, svcErr.Status, name)
	}
}

func TestCreateDuplicateEmailPerOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	_, err := svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.CodeConflict, svcErr.Code)
	require.Equal(t, http.StatusConflict, svcErr.Status)

	// The same email under a different owner is fine.
	other, err := svc.Create(ctx, ownerBob, createInput("b@x.com"))
	require.NoError(t, err)
	require.Equal(t, ownerBob, other.StudentID)
}

func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	created, err := svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	require.NoError(t, err)

	list, err := svc.List(ctx, ownerBob)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = svc.Get(ctx, ownerBob, created.ID)
	requireEmployeeNotFound(t, err)

	name := "Hijacked"
	_, err = svc.Update(ctx, ownerBob, created.ID, service.UpdateEmployeeInput{Name: &name})
	requireEmployeeNotFound(t, err)

	err = svc.Delete(ctx, ownerBob, created.ID)
	requireEmployeeNotFound(t, err)

	// The record is untouched for its owner.
	got, err := svc.Get(ctx, ownerAlice, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", got.Name)
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	created, err := svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	require.NoError(t, err)

	salary := decimal.NewFromInt(60000)
	updated, err := svc.Update(ctx, ownerAlice, created.ID, service.UpdateEmployeeInput{Salary: &salary})
	require.NoError(t, err)
	require.True(t, updated.Salary.Equal(salary))
	require.Equal(t, created.Name, updated.Name)
	require.Equal(t, created.Email, updated.Email)
	require.Equal(t, ownerAlice, updated.StudentID, "owner must never change")
}

func TestUpdateValidatesMergedRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	created, err := svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	require.NoError(t, err)

	bad := "not-an-email"
	_, err = svc.Update(ctx, ownerAlice, created.ID, service.UpdateEmployeeInput{Email: &bad})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.CodeValidationFailed, svcErr.Code)
}

func TestUpdateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	_, err := svc.Create(ctx, ownerAlice, createInput("first@x.com"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, ownerAlice, createInput("second@x.com"))
	require.NoError(t, err)

	taken := "first@x.com"
	_, err = svc.Update(ctx, ownerAlice, second.ID, service.UpdateEmployeeInput{Email: &taken})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.CodeConflict, svcErr.Code)
}

func TestDeleteIdempotentAbsence(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	created, err := svc.Create(ctx, ownerAlice, createInput("b@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ownerAlice, created.ID))

	_, err = svc.Get(ctx, ownerAlice, created.ID)
	requireEmployeeNotFound(t, err)
	err = svc.Delete(ctx, ownerAlice, created.ID)
	requireEmployeeNotFound(t, err)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeService(t)

	first, err := svc.Create(ctx, ownerAlice, createInput("first@x.com"))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.Create(ctx, ownerAlice, createInput("second@x.com"))
	require.NoError(t, err)

	list, err := svc.List(ctx, ownerAlice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func requireEmployeeNotFound(t *testing.T, err error) {
	t.Helper()
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.CodeNotFound, svcErr.Code)
	require.Equal(t, http.StatusNotFound, svcErr.Status)
}
