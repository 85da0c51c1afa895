package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	policymocks "github.com/NeuralTrust/TrustChat/pkg/domain/policy/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
	cachemocks "github.com/NeuralTrust/TrustChat/pkg/infra/cache/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, sqlMock
}

var policyColumns = []string{
	"id", "name", "type", "scope", "applicable_users", "version",
	"effective_date", "active", "rules", "created_at", "updated_at",
}

func TestPolicyRepository_List(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPolicyRepository(db)
	now := time.Now()

	sqlMock.ExpectQuery(`SELECT \* FROM "policies" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(policyColumns).
			AddRow("confidentiality", "Confidentiality", policy.TypeConfidentiality, policy.ScopeCompanyWide,
				"{}", "1.0", "", true, []byte(`{"confidential_patterns":{"code":"token"}}`), now, now).
			AddRow("vip", "VIP only", "generic", policy.ScopeUserSpecific,
				"{u1,u2}", "2.0", "", true, []byte(`{"prohibited_keywords":["x"]}`), now, now))

	policies, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "confidentiality", policies[0].ID)
	assert.Equal(t, []string{"u1", "u2"}, []string(policies[1].ApplicableUsers))
	assert.Equal(t, []interface{}{"x"}, policies[1].Rules["prohibited_keywords"])
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPolicyRepository_Get_NotFound(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPolicyRepository(db)

	sqlMock.ExpectQuery(`SELECT \* FROM "policies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(policyColumns))

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, domain.IsNotFoundError(err))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPolicyRepository_Save_Upserts(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPolicyRepository(db)

	sqlMock.ExpectExec(`INSERT INTO "policies" .* ON CONFLICT \("id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &policy.Policy{
		ID:    "data_protection",
		Name:  "Data protection",
		Type:  policy.TypeDataProtection,
		Scope: policy.ScopeCompanyWide,
		Rules: domain.JSONMap{"pii_patterns": map[string]interface{}{"email": `\S+@\S+`}},
	}
	require.NoError(t, repo.Save(context.Background(), p))
	assert.Equal(t, "1.0", p.Version)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPolicyRepository_Save_Invalid(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPolicyRepository(db)

	err := repo.Save(context.Background(), &policy.Policy{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPolicyRepository_Delete(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPolicyRepository(db)

	sqlMock.ExpectExec(`DELETE FROM "policies" WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(`DELETE FROM "policies" WHERE id = \$1`).
		WithArgs("p2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "p1"))
	assert.True(t, domain.IsNotFoundError(repo.Delete(context.Background(), "p2")))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

const seedYAML = `
policies:
  - id: harassment_prevention
    name: Harassment prevention
    type: harassment_prevention
    scope: company_wide
    active: false
    rules:
      prohibited_phrases:
        - "(stupid|idiot)"
  - id: vip
    name: VIP
    type: generic
    scope: user_specific
    applicable_users: [u1]
    rules:
      prohibited_keywords: [secret]
      severity: high
`

func TestParsePolicySeed(t *testing.T) {
	policies, err := ParsePolicySeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "1.0", policies[0].Version)
	assert.Equal(t, []interface{}{"(stupid|idiot)"}, policies[0].Rules["prohibited_phrases"])
	assert.False(t, policies[0].Active)
	assert.True(t, policies[1].Active)
	assert.True(t, policies[1].AppliesTo("u1"))

	_, err = ParsePolicySeed([]byte("policies:\n  - name: no id\n    type: generic\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMemoryPolicyRepository(t *testing.T) {
	ctx := context.Background()
	seed, err := ParsePolicySeed([]byte(seedYAML))
	require.NoError(t, err)
	repo := NewMemoryPolicyRepository(seed)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "harassment_prevention", list[0].ID)

	list[0].Name = "mutated"
	got, err := repo.Get(ctx, "harassment_prevention")
	require.NoError(t, err)
	assert.Equal(t, "Harassment prevention", got.Name)

	created := got.CreatedAt
	got.Name = "Renamed"
	require.NoError(t, repo.Save(ctx, got))
	again, _ := repo.Get(ctx, "harassment_prevention")
	assert.Equal(t, "Renamed", again.Name)
	assert.Equal(t, created, again.CreatedAt)

	require.NoError(t, repo.Delete(ctx, "vip"))
	assert.True(t, domain.IsNotFoundError(repo.Delete(ctx, "vip")))
	_, err = repo.Get(ctx, "vip")
	assert.True(t, domain.IsNotFoundError(err))
}

func TestCachedPolicyRepository(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	next := policymocks.NewRepository(t)
	publisher := cachemocks.NewEventPublisher(t)
	ttlMap := cache.NewTTLMap(time.Minute)
	repo := NewCachedPolicyRepository(next, ttlMap, publisher, logger)

	stored := []*policy.Policy{{ID: "p1", Name: "P1", Type: "generic"}}
	next.EXPECT().List(mock.Anything).Return(stored, nil).Twice()

	for i := 0; i < 3; i++ {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}

	publisher.EXPECT().Publish(mock.Anything, event.UpdatePolicyCacheEvent{PolicyID: "p1"}).
		Return(errors.New("redis down")).Once()
	next.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, repo.Save(ctx, &policy.Policy{ID: "p1", Name: "P1", Type: "generic"}))

	_, err := repo.List(ctx)
	require.NoError(t, err)

	next.EXPECT().Get(mock.Anything, "p1").Return(stored[0], nil).Once()
	_, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.Get(ctx, "p1")
	require.NoError(t, err)

	publisher.EXPECT().Publish(mock.Anything, event.DeletePolicyCacheEvent{PolicyID: "p1"}).Return(nil).Once()
	next.EXPECT().Delete(mock.Anything, "p1").Return(nil).Once()
	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.Equal(t, 0, ttlMap.Len())
}

func TestCachedPolicyRepository_DeleteErrorSkipsPublish(t *testing.T) {
	next := policymocks.NewRepository(t)
	publisher := cachemocks.NewEventPublisher(t)
	repo := NewCachedPolicyRepository(next, cache.NewTTLMap(time.Minute), publisher, logrus.New())

	next.EXPECT().Delete(mock.Anything, "p9").Return(domain.NewNotFoundError("policy", "p9")).Once()
	err := repo.Delete(context.Background(), "p9")
	assert.True(t, domain.IsNotFoundError(err))
}
