package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"account-item-service/internal/adapter/cache"
	"account-item-service/internal/adapter/db/postgres"
	"account-item-service/internal/adapter/gin/handler"
	"account-item-service/internal/adapter/gin/middleware"
	"account-item-service/internal/adapter/gin/router"
	"account-item-service/internal/adapter/repository/cached"
	"account-item-service/internal/usecase/account"
	"account-item-service/internal/usecase/item"
)

// APIIntegrationTestSuite exercises the HTTP API against the full stack:
// real handlers, real usecases, the cached repository decorator, an
// in-memory SQLite database and an in-process Redis.
type APIIntegrationTestSuite struct {
	suite.Suite
	server      *httptest.Server
	httpClient  *http.Client
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
}

func (s *APIIntegrationTestSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&postgres.AccountSchema{}, &postgres.ItemSchema{}))

	s.redisServer = miniredis.RunT(s.T())
	s.redisClient = redis.NewClient(&redis.Options{Addr: s.redisServer.Addr()})

	itemCache := cache.NewRedisItemCache(s.redisClient, 5*time.Minute, logger)
	accountRepo := postgres.NewAccountRepoPG(db, logger)
	itemRepo := cached.NewCachedItemRepository(postgres.NewItemRepoPG(db, logger), itemCache, logger)

	accountUC := account.New(accountRepo, logger)
	itemUC := item.New(itemRepo, logger)

	accountHandler := handler.NewAccountHandler(accountUC, logger)
	itemHandler := handler.NewItemHandler(itemUC, logger)

	// The limiter gets its own coverage; here it would only add noise.
	engine := router.SetupRouter(accountHandler, itemHandler,
		middleware.RateLimiterConfig{Enabled: false}, s.redisClient, logger)

	s.server = httptest.NewServer(engine)
	s.httpClient = s.server.Client()
}

func (s *APIIntegrationTestSuite) TearDownTest() {
	s.server.Close()
	_ = s.redisClient.Close()
}

func (s *APIIntegrationTestSuite) request(method, path string, body any) (int, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func (s *APIIntegrationTestSuite) listItems(userID string) (int, []map[string]any) {
	resp, err := s.httpClient.Get(s.server.URL + "/items/" + userID)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var items []map[string]any
	s.Require().NoError(json.Unmarshal(raw, &items))
	return resp.StatusCode, items
}

func (s *APIIntegrationTestSuite) register(name, email, password string) string {
	code, body := s.request(http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusCreated, code)
	s.Require().Equal("Success", body["status"])
	userID, ok := body["userId"].(string)
	s.Require().True(ok)
	s.Require().NotEmpty(userID)
	return userID
}

// TestFullAccountAndItemLifecycle walks the happy path end to end:
// register, login, create an item, list, update, delete, list again.
func (s *APIIntegrationTestSuite) TestFullAccountAndItemLifecycle() {
	userID := s.register("Ana", "ana@example.com", "Secret123")

	// Login returns the same account.
	code, body := s.request(http.MethodPost, "/login", map[string]string{
		"email":    "ana@example.com",
		"password": "Secret123",
	})
	s.Equal(http.StatusOK, code)
	s.Equal("Success", body["status"])
	s.Equal(userID, body["userId"])
	s.Equal("Ana", body["name"])

	// Create an item.
	code, body = s.request(http.MethodPost, "/items", map[string]string{
		"title":       "Milk",
		"description": "2%",
		"userId":      userID,
	})
	s.Equal(http.StatusCreated, code)
	s.Equal("Success", body["status"])
	created := body["item"].(map[string]any)
	itemID := created["id"].(string)
	s.NotEmpty(itemID)
	s.Equal("Milk", created["title"])
	s.Equal("2%", created["description"])
	s.Equal(userID, created["ownerId"])

	// The item shows up in the owner's list.
	code, items := s.listItems(userID)
	s.Equal(http.StatusOK, code)
	s.Require().Len(items, 1)
	s.Equal(itemID, items[0]["id"])

	// Update the description.
	code, body = s.request(http.MethodPut, "/items/"+itemID, map[string]string{
		"title":       "Milk",
		"description": "Whole",
	})
	s.Equal(http.StatusOK, code)
	updated := body["item"].(map[string]any)
	s.Equal("Whole", updated["description"])

	// The list reflects the update, not a stale cache entry.
	code, items = s.listItems(userID)
	s.Equal(http.StatusOK, code)
	s.Require().Len(items, 1)
	s.Equal("Whole", items[0]["description"])

	// Delete and verify the list is an empty array again.
	code, body = s.request(http.MethodDelete, "/items/"+itemID, nil)
	s.Equal(http.StatusOK, code)
	s.Equal("Success", body["status"])
	s.Equal("Item deleted successfully", body["message"])

	code, items = s.listItems(userID)
	s.Equal(http.StatusOK, code)
	s.NotNil(items)
	s.Empty(items)
}

func (s *APIIntegrationTestSuite) TestRegisterDuplicateEmail() {
	s.register("Bo", "bo@example.com", "first")

	code, body := s.request(http.MethodPost, "/register", map[string]string{
		"name":     "Bo Again",
		"email":    "bo@example.com",
		"password": "second",
	})

	s.Equal(http.StatusConflict, code)
	s.Equal("error", body["status"])
	s.Equal("email already exists", body["message"])
}

func (s *APIIntegrationTestSuite) TestRegisterMissingFields() {
	code, body := s.request(http.MethodPost, "/register", map[string]string{
		"email": "ana@example.com",
	})

	s.Equal(http.StatusBadRequest, code)
	s.Equal("error", body["status"])
	s.Equal("name, email and password are required", body["message"])
}

func (s *APIIntegrationTestSuite) TestLoginUnknownEmail() {
	code, body := s.request(http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})

	s.Equal(http.StatusNotFound, code)
	s.Equal("error", body["status"])
	s.Equal("no user found with that email", body["message"])
}

func (s *APIIntegrationTestSuite) TestLoginWrongPassword() {
	s.register("Ana", "ana@example.com", "Secret123")

	code, body := s.request(http.MethodPost, "/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
	})

	s.Equal(http.StatusUnauthorized, code)
	s.Equal("error", body["status"])
	s.Equal("incorrect password", body["message"])
}

func (s *APIIntegrationTestSuite) TestItemsNewestFirst() {
	userID := s.register("Ana", "ana@example.com", "Secret123")

	for i := 1; i <= 3; i++ {
		code, _ := s.request(http.MethodPost, "/items", map[string]string{
			"title":  fmt.Sprintf("item-%d", i),
			"userId": userID,
		})
		s.Require().Equal(http.StatusCreated, code)
		time.Sleep(10 * time.Millisecond)
	}

	code, items := s.listItems(userID)
	s.Equal(http.StatusOK, code)
	s.Require().Len(items, 3)
	s.Equal("item-3", items[0]["title"])
	s.Equal("item-2", items[1]["title"])
	s.Equal("item-1", items[2]["title"])
}

func (s *APIIntegrationTestSuite) TestListForUnknownUserIsEmptyArray() {
	code, items := s.listItems("no-such-user")

	s.Equal(http.StatusOK, code)
	s.NotNil(items)
	s.Empty(items)
}

func (s *APIIntegrationTestSuite) TestUpdateMissingItem() {
	code, body := s.request(http.MethodPut, "/items/does-not-exist", map[string]string{
		"title":       "x",
		"description": "y",
	})

	s.Equal(http.StatusNotFound, code)
	s.Equal("item not found", body["message"])
}

func (s *APIIntegrationTestSuite) TestDeleteMissingItem() {
	code, body := s.request(http.MethodDelete, "/items/does-not-exist", nil)

	s.Equal(http.StatusNotFound, code)
	s.Equal("item not found", body["message"])
}

func (s *APIIntegrationTestSuite) TestOwnershipIsClientAsserted() {
	anaID := s.register("Ana", "ana@example.com", "pw-a")
	boID := s.register("Bo", "bo@example.com", "pw-b")

	code, body := s.request(http.MethodPost, "/items", map[string]string{
		"title":  "Ana's milk",
		"userId": anaID,
	})
	s.Require().Equal(http.StatusCreated, code)
	itemID := body["item"].(map[string]any)["id"].(string)

	// Nothing ties the caller to the owner: anyone holding the item id
	// may update it, and the owner stays unchanged.
	code, body = s.request(http.MethodPut, "/items/"+itemID, map[string]string{
		"title":       "Bo's milk now",
		"description": "taken",
	})
	s.Equal(http.StatusOK, code)
	s.Equal(anaID, body["item"].(map[string]any)["ownerId"])

	_, boItems := s.listItems(boID)
	s.Empty(boItems)
}

func (s *APIIntegrationTestSuite) TestHealthEndpoint() {
	resp, err := s.httpClient.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
