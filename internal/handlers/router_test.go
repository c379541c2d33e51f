package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/auth"
	"grocerystore/internal/cart"
	"grocerystore/internal/catalog"
	"grocerystore/internal/demo"
	"grocerystore/internal/models"
	"grocerystore/internal/orders"
	"grocerystore/internal/repository"
	"grocerystore/internal/repository/memory"
	"grocerystore/internal/users"
)

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  repository.Store
	auth   *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	store := memory.New().Repositories()
	require.NoError(t, demo.Seed(context.Background(), store, log))

	authSvc := auth.NewService(store.Users, store.Tokens, "handler-secret", time.Minute, time.Hour, log)
	router := NewRouter(Deps{
		Catalog: catalog.NewService(store, log),
		Carts:   cart.NewService(store.Groceries, store.Carts, log),
		Orders:  orders.NewService(store.Groceries, store.Orders, store.Users, store.Tx, nil, log),
		Auth:    authSvc,
		Users:   users.NewService(store.Users, authSvc, log),
		Health:  store.Health,
		Log:     log,
	})
	return &testServer{t: t, router: router, store: store, auth: authSvc}
}

func (s *testServer) call(method, path, token, body string) (int, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) register(email string) (models.User, string) {
	s.t.Helper()
	status, env := s.call(http.MethodPost, "/user/register", "", `{"firstName":"Jane","email":"`+email+`","password":"hunter22"}`)
	require.Equal(s.t, http.StatusCreated, status, env.Message)

	var sess struct {
		User        models.User `json:"user"`
		AccessToken string      `json:"accessToken"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &sess))
	return sess.User, sess.AccessToken
}

func (s *testServer) adminToken() string {
	s.t.Helper()
	hash, err := s.auth.HashPassword("rootpass")
	require.NoError(s.t, err)
	admin := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    "Root",
		Email:        "root@email.com",
		PasswordHash: hash,
		Type:         models.UserTypeAdministrator,
		Status:       models.StatusActive,
	}
	require.NoError(s.t, s.store.Users.InsertUser(context.Background(), &admin))

	status, env := s.call(http.MethodPost, "/user/login", "", `{"email":"root@email.com","password":"rootpass"}`)
	require.Equal(s.t, http.StatusOK, status)
	var tokens auth.Tokens
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func (s *testServer) groceryID(name string) string {
	s.t.Helper()
	found, err := s.store.Groceries.FindGroceries(context.Background(), repository.GroceryQuery{Name: name})
	require.NoError(s.t, err)
	require.NotEmpty(s.t, found)
	return found[0].ID.Hex()
}

func TestGroceryRoutes(t *testing.T) {
	s := newTestServer(t)

	status, env := s.call(http.MethodGet, "/grocery", "", "")
	require.Equal(t, http.StatusOK, status)
	var groceries []models.Grocery
	require.NoError(t, json.Unmarshal(env.Data, &groceries))
	assert.Len(t, groceries, 11)

	status, env = s.call(http.MethodGet, "/grocery?name=MIL", "", "")
	require.Equal(t, http.StatusOK, status)
	var byName []models.Grocery
	require.NoError(t, json.Unmarshal(env.Data, &byName))
	require.Len(t, byName, 1)
	assert.Equal(t, "Milk", byName[0].Name)

	status, env = s.call(http.MethodGet, "/grocery?name=caviar", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found.", env.Status)
	assert.Equal(t, "No groceries found.", env.Error.Message)

	status, env = s.call(http.MethodGet, "/grocery?colour=red", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "QueryError", env.Error.Title)

	status, _ = s.call(http.MethodGet, "/category", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestGroceryAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.register("jane@email.com")
	adminToken := s.adminToken()
	body := `{"name":"Oat Milk","brand":"Oatly","category":"Dairy and Eggs","price":{"value":4.49,"currency":"CAD"},"stock":12,"status":"Active"}`

	status, env := s.call(http.MethodPost, "/grocery", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Administrator authentication required to perform this action.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/grocery", userToken, body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only user with Administrator rights can perform this action.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/grocery", adminToken, body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "Grocery item successfully created.", env.Message)

	id := s.groceryID("Oat Milk")
	status, _ = s.call(http.MethodPut, "/grocery/"+id, adminToken, `{"stock":3}`)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.call(http.MethodPut, "/grocery/"+id, adminToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No fields provided within request body.", env.Error.Message)
}

func TestOrderRoutes(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("jane@email.com")
	adminToken := s.adminToken()
	milk := s.groceryID("Milk")

	status, env := s.call(http.MethodPost, "/order", "", `{"order":[{"_id":"`+milk+`"}]}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "User login required.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/order", token, `{"order":"`+milk+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InputError", env.Error.Title)

	status, env = s.call(http.MethodPost, "/order", token, `{"order":[{"_id":"`+milk+`"},{"_id":"`+milk+`"}]}`)
	require.Equal(t, http.StatusCreated, status, env.Error)
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, 5.98, order.TotalCost.Value)
	assert.Equal(t, models.StatusActive, order.Status)

	status, env = s.call(http.MethodGet, "/order", token, "")
	require.Equal(t, http.StatusOK, status)
	var list []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	status, env = s.call(http.MethodGet, "/order/"+order.ID.Hex(), token, "")
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Order        models.Order     `json:"order"`
		GroceryItems []models.Grocery `json:"groceryItems"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, order.ID, detail.Order.ID)
	assert.NotEmpty(t, detail.GroceryItems)

	status, _ = s.call(http.MethodDelete, "/order/"+order.ID.Hex(), token, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.call(http.MethodDelete, "/order/"+order.ID.Hex(), adminToken, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Order "+order.ID.Hex()+" has been successfully cancelled.", env.Message)

	status, env = s.call(http.MethodDelete, "/order/"+order.ID.Hex(), adminToken, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Conflict", env.Error.Title)
}

func TestSavedCartRoutes(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("jane@email.com")
	bread := s.groceryID("Bread")

	status, env := s.call(http.MethodGet, "/saved-cart", token, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No saved cart found.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/saved-cart", token, `{"cart":[1,2]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Required format for request body: { 'cart': [{'_id': '123a4bc'}, ...] }", env.Error.Message)

	status, env = s.call(http.MethodPost, "/saved-cart", token, `{"cart":[{"_id":"`+primitive.NewObjectID().Hex()+`"}]}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = s.call(http.MethodPost, "/saved-cart", token, `{"cart":[{"_id":"`+bread+`"}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cart saved.", env.Message)

	status, env = s.call(http.MethodGet, "/saved-cart", token, "")
	require.Equal(t, http.StatusOK, status)
	var items []models.Grocery
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].Name)
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t)
	jane, token := s.register("jane@email.com")
	other, otherToken := s.register("other@email.com")

	status, env := s.call(http.MethodPost, "/user/register", token, `{"firstName":"J","email":"x@email.com","password":"p"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email jane@email.com is currently logged in. Please log out to proceed.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/user/register", "", `{"firstName":"J","email":"jane@email.com","password":"p"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email jane@email.com is already registered.", env.Error.Message)

	status, env = s.call(http.MethodPost, "/user/login", "", `{"email":"jane@email.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect login credentials.", env.Error.Message)

	status, env = s.call(http.MethodGet, "/user/me", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), "password")

	status, _ = s.call(http.MethodGet, "/user/"+jane.ID.Hex(), token, "")
	assert.Equal(t, http.StatusOK, status)

	status, env = s.call(http.MethodGet, "/user/"+jane.ID.Hex(), otherToken, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only an administrator or owner can view user data.", env.Error.Message)

	status, env = s.call(http.MethodPut, "/user/"+jane.ID.Hex(), token, `{"lastName":"Doe"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User successfully updated.", env.Message)

	status, env = s.call(http.MethodDelete, "/user/"+other.ID.Hex(), otherToken, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User other@email.com has been successfully removed.", env.Message)

	status, _ = s.call(http.MethodGet, "/user/me", otherToken, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTokenRoutes(t *testing.T) {
	s := newTestServer(t)
	status, env := s.call(http.MethodPost, "/user/register", "", `{"firstName":"Jane","email":"jane@email.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, status)
	var tokens auth.Tokens
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	status, env = s.call(http.MethodPost, "/user/refresh", "", `{"refreshToken":"`+tokens.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, status)
	var rotated auth.Tokens
	require.NoError(t, json.Unmarshal(env.Data, &rotated))

	status, env = s.call(http.MethodPost, "/user/logout", "", `{"refreshToken":"`+rotated.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User jane@email.com has been logged out.", env.Message)

	status, env = s.call(http.MethodPost, "/user/logout", "", `{"refreshToken":"`+rotated.RefreshToken+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No user was logged in.", env.Error.Message)
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.call(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Service healthy.", env.Message)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "grocerystore_http_requests_total")
}
