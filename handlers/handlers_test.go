package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/middleware"
	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGroupHandler(t *testing.T) {
	t.Run("list wraps groups", func(t *testing.T) {
		svc := new(MockGroupService)
		svc.On("ListGroups", mock.Anything).Return([]types.Group{{ID: "g1", Name: "Trip"}}, nil)
		r := setupRouter()
		r.GET("/groups", NewGroupHandler(svc).ListGroupsHandler)

		w := doJSON(r, http.MethodGet, "/groups", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var groups []types.Group
		require.NoError(t, json.Unmarshal(decode(t, w)["groups"], &groups))
		assert.Equal(t, "Trip", groups[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("get unknown group", func(t *testing.T) {
		svc := new(MockGroupService)
		svc.On("GetGroup", mock.Anything, "missing").Return(nil, apperrors.NotFound("Group", "missing"))
		r := setupRouter()
		r.GET("/groups/:id", NewGroupHandler(svc).GetGroupHandler)

		w := doJSON(r, http.MethodGet, "/groups/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Group not found")
	})

	t.Run("create rejects a missing name", func(t *testing.T) {
		svc := new(MockGroupService)
		r := setupRouter()
		r.POST("/groups", NewGroupHandler(svc).CreateGroupHandler)

		w := doJSON(r, http.MethodPost, "/groups", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		svc := new(MockGroupService)
		svc.On("CreateGroup", mock.Anything, types.GroupInput{Name: "Flat"}).Return(&types.Group{ID: "g2", Name: "Flat"}, nil)
		r := setupRouter()
		r.POST("/groups", NewGroupHandler(svc).CreateGroupHandler)

		w := doJSON(r, http.MethodPost, "/groups", types.GroupInput{Name: "Flat"})

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.JSONEq(t, `"Group added successfully"`, string(body["message"]))
		assert.Contains(t, string(body["group"]), `"id":"g2"`)
	})

	t.Run("balances", func(t *testing.T) {
		svc := new(MockGroupService)
		svc.On("GroupBalances", mock.Anything, "g1").Return(types.Balances{
			"p1": {Name: "Alice", Paid: 30, Owes: 10, Balance: 20},
		}, nil)
		r := setupRouter()
		r.GET("/groups/:id/balances", NewGroupHandler(svc).GroupBalancesHandler)

		w := doJSON(r, http.MethodGet, "/groups/g1/balances", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var balances types.Balances
		require.NoError(t, json.Unmarshal(decode(t, w)["balances"], &balances))
		assert.Equal(t, 20.0, balances["p1"].Balance)
	})

	t.Run("store outage is a 500", func(t *testing.T) {
		svc := new(MockGroupService)
		svc.On("GroupExpenses", mock.Anything, "g1").Return(nil, apperrors.StoreUnavailable("expenses.select", errors.New("timeout")))
		r := setupRouter()
		r.GET("/groups/:id/expenses", NewGroupHandler(svc).GroupExpensesHandler)

		w := doJSON(r, http.MethodGet, "/groups/g1/expenses", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "timeout")
	})
}

func TestExpenseHandler_Create(t *testing.T) {
	input := types.ExpenseInput{Name: "Dinner", GroupID: "g1", PayerID: "p1", Amount: 100, Debtors: []string{"p1", "p2", "p3"}}

	t.Run("returns expense and debtors", func(t *testing.T) {
		svc := new(MockExpenseService)
		svc.On("CreateExpense", mock.Anything, input).Return(
			&types.Expense{ID: "e1", GroupID: "g1", Name: "Dinner", Amount: 100, PayerID: "p1"},
			[]types.ExpenseDebtor{
				{ID: "d1", ExpenseID: "e1", PersonID: "p1", Amount: 33.34},
				{ID: "d2", ExpenseID: "e1", PersonID: "p2", Amount: 33.33},
				{ID: "d3", ExpenseID: "e1", PersonID: "p3", Amount: 33.33},
			}, nil)
		r := setupRouter()
		r.POST("/expenses", NewExpenseHandler(svc).CreateExpenseHandler)

		w := doJSON(r, http.MethodPost, "/expenses", input)

		assert.Equal(t, http.StatusCreated, w.Code)
		var debtors []types.ExpenseDebtor
		require.NoError(t, json.Unmarshal(decode(t, w)["debtors"], &debtors))
		assert.Len(t, debtors, 3)
		svc.AssertExpectations(t)
	})

	t.Run("validation error from the service", func(t *testing.T) {
		svc := new(MockExpenseService)
		bad := input
		bad.Debtors = nil
		svc.On("CreateExpense", mock.Anything, bad).Return(nil, nil, apperrors.ValidationFailed("invalid expense", "at least one debtor is required"))
		r := setupRouter()
		r.POST("/expenses", NewExpenseHandler(svc).CreateExpenseHandler)

		w := doJSON(r, http.MethodPost, "/expenses", bad)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at least one debtor is required")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockExpenseService)
		r := setupRouter()
		r.POST("/expenses", NewExpenseHandler(svc).CreateExpenseHandler)

		req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateExpense", mock.Anything, mock.Anything)
	})
}

func TestDebtorHandler(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		amount := 12.5
		svc := new(MockDebtorService)
		svc.On("UpdateDebtor", mock.Anything, "d1", types.DebtorUpdate{Amount: &amount}).
			Return(&types.ExpenseDebtor{ID: "d1", ExpenseID: "e1", PersonID: "p2", Amount: amount}, nil)
		r := setupRouter()
		r.PUT("/debtors/:id", NewDebtorHandler(svc).UpdateDebtorHandler)

		w := doJSON(r, http.MethodPut, "/debtors/d1", map[string]float64{"amount": amount})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w)["debtor"]), `"amount":12.5`)
		svc.AssertExpectations(t)
	})

	t.Run("delete reports the removed row", func(t *testing.T) {
		svc := new(MockDebtorService)
		svc.On("DeleteDebtor", mock.Anything, "d1").Return(&types.ExpenseDebtor{ID: "d1"}, nil)
		r := setupRouter()
		r.DELETE("/debtors/:id", NewDebtorHandler(svc).DeleteDebtorHandler)

		w := doJSON(r, http.MethodDelete, "/debtors/d1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w)["deleted_debtor"]), `"id":"d1"`)
	})

	t.Run("delete with a missing parent expense", func(t *testing.T) {
		svc := new(MockDebtorService)
		svc.On("DeleteDebtor", mock.Anything, "d9").Return(nil, apperrors.NotFound("Expense", "e9"))
		r := setupRouter()
		r.DELETE("/debtors/:id", NewDebtorHandler(svc).DeleteDebtorHandler)

		w := doJSON(r, http.MethodDelete, "/debtors/d9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler(t *testing.T) {
	groups := []types.Group{{ID: "g1", Name: "Trip"}}

	t.Run("my groups uses the token subject", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UserGroups", mock.Anything, "u1").Return(groups, nil)
		r := setupRouter()
		r.GET("/users/me/groups", func(c *gin.Context) {
			c.Set(string(middleware.UserIDKey), "u1")
			c.Next()
		}, NewUserHandler(svc).MyGroupsHandler)

		w := doJSON(r, http.MethodGet, "/users/me/groups", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("my groups without a user", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupRouter()
		r.GET("/users/me/groups", NewUserHandler(svc).MyGroupsHandler)

		w := doJSON(r, http.MethodGet, "/users/me/groups", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("groups of another user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UserGroups", mock.Anything, "u2").Return([]types.Group{}, nil)
		r := setupRouter()
		r.GET("/users/:id/groups", NewUserHandler(svc).UserGroupsHandler)

		w := doJSON(r, http.MethodGet, "/users/u2/groups", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"groups":[]}`, w.Body.String())
	})
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		status     types.HealthStatus
		wantStatus int
	}{
		{types.HealthStatusUp, http.StatusOK},
		{types.HealthStatusDegraded, http.StatusOK},
		{types.HealthStatusDown, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			checker := new(MockHealthChecker)
			checker.On("CheckHealth", mock.Anything).Return(types.HealthCheck{Status: tt.status})
			r := setupRouter()
			r.GET("/health/readiness", NewHealthHandler(checker).ReadinessCheck)

			w := doJSON(r, http.MethodGet, "/health/readiness", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
