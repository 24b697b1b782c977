//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/link-financer/backend/config"
	"github.com/link-financer/backend/internal/infra/dependency"
	"github.com/link-financer/backend/internal/integration/persistence/model"
	"github.com/link-financer/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testJWTIssuer = "link-financer"
)

// suite holds the infrastructure shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	clock    *mock.Time
	cfg      *config.Config
	injector *dependency.Injector
	server   *httptest.Server
}

var (
	suiteOnce sync.Once
	shared    *suite
	suiteErr  error
)

func getSuite() (*suite, error) {
	suiteOnce.Do(func() {
		s := &suite{
			db: mock.NewDb(map[string]any{
				"transactions": &model.TransactionModel{},
			}),
			redis: mock.NewRedis(),
			clock: mock.NewTime(),
			cfg:   config.Load(),
		}

		s.cfg.Server.Environment = "test"
		s.cfg.JWT.Secret = testJWTSecret
		s.cfg.JWT.Issuer = testJWTIssuer
		s.cfg.Aggregation.Locale = "pt-BR"
		s.cfg.Aggregation.WithdrawalCategory = "Sangria"

		s.injector, suiteErr = dependency.NewInjector(s.cfg, s.db.DbConn, s.redis.Client, s.clock.Now)
		if suiteErr != nil {
			suiteErr = fmt.Errorf("failed to build injector: %w", suiteErr)
			return
		}

		s.server = httptest.NewServer(s.injector.Router.Setup(s.cfg.Server.Environment))
		shared = s
	})
	return shared, suiteErr
}

// reset returns the shared infrastructure to a clean state between scenarios.
func (s *suite) reset() error {
	if err := s.db.ClearDB(); err != nil {
		return err
	}
	s.redis.Clear()
	s.clock.Reset()
	s.injector.RateLimiter.Reset()
	return nil
}

// TestContext holds the test state for each scenario.
type TestContext struct {
	suite *suite

	// Auth
	userID      uuid.UUID
	accessToken string

	// Last response
	response     *http.Response
	responseBody []byte
	responseJSON any
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
			_ = shared.redis.Client.Close()
			shared.redis.Server.Close()
		}
	})
}
