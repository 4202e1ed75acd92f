package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"employee-service/internal/employee"
	"employee-service/internal/metrics"
	"employee-service/testing/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (chi.Router, *testdb.PostgresContainer) {
	t.Helper()

	pgContainer := testdb.SetupSharedPostgres(t)
	pgContainer.RunMigrations(t, (*employee.Employee)(nil))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	repo := employee.NewRepository(pgContainer.DB)
	service := employee.NewService(repo, nil)
	handler := employee.NewHandler(service, logger, metrics.NewMock())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return router, pgContainer
}

func doJSON(t *testing.T, router chi.Router, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	return w
}

func TestEmployeeAPI(t *testing.T) {
	router, pgContainer := setupHandlerTest(t)

	t.Run("CreateEmployee", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john.doe@example.com",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.NotZero(t, response.ID)
		assert.Equal(t, "John", response.FirstName)
		assert.Equal(t, "Doe", response.LastName)
		assert.Equal(t, "john.doe@example.com", response.Email)
	})

	t.Run("CreateEmployee_DuplicateEmail", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		payload := map[string]interface{}{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john.doe@example.com",
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/v1/employees", payload)
		assert.Equal(t, http.StatusConflict, w.Code)

		// The store must be unchanged
		var all []employee.Employee
		w = doJSON(t, router, http.MethodGet, "/api/v1/employees", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
		assert.Len(t, all, 1)
	})

	t.Run("CreateEmployee_InvalidBody", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "John",
			"lastName":  "Doe",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetEmployee", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "Jane",
			"lastName":  "Smith",
			"email":     "jane.smith@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var fetched employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
		assert.Equal(t, created, fetched)
	})

	t.Run("GetEmployee_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodGet, "/api/v1/employees/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("GetEmployee_InvalidID", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/employees/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetAllEmployees", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		ctx := context.Background()
		employees := []*employee.Employee{
			{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"},
			{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com"},
		}
		for _, e := range employees {
			_, err := pgContainer.DB.NewInsert().Model(e).Exec(ctx)
			require.NoError(t, err)
		}

		w := doJSON(t, router, http.MethodGet, "/api/v1/employees", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var all []employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
		assert.Len(t, all, 2)
	})

	t.Run("GetAllEmployees_Empty", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodGet, "/api/v1/employees", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("UpdateEmployee", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john.doe@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		patch := map[string]interface{}{
			"firstName": "Johnny",
			"lastName":  "Doherty",
			"email":     "johnny.doherty@example.com",
		}

		w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID), patch)
		assert.Equal(t, http.StatusOK, w.Code)

		var updated employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Johnny", updated.FirstName)
		assert.Equal(t, "Doherty", updated.LastName)
		assert.Equal(t, "johnny.doherty@example.com", updated.Email)

		// Same patch twice yields the same stored state
		w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID), patch)
		assert.Equal(t, http.StatusOK, w.Code)

		var again employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&again))
		assert.Equal(t, updated, again)
	})

	t.Run("UpdateEmployee_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPut, "/api/v1/employees/42", map[string]interface{}{
			"firstName": "Jane",
			"lastName":  "Smith",
			"email":     "jane.smith@example.com",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("DeleteEmployee", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john.doe@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fmt.Sprintf("Employee is deleted with ID: %d", created.ID), w.Body.String())

		w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteEmployee_AbsentID", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		// Delete does not verify existence before reporting success
		w := doJSON(t, router, http.MethodDelete, "/api/v1/employees/42", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Employee is deleted with ID: 42", w.Body.String())
	})

	t.Run("DeleteEmployee_InvalidID", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/employees/0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/api/v1/employees/-5", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/api/v1/employees/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EndToEnd", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "employees")

		w := doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"firstName": "first",
			"lastName":  "last",
			"email":     "a@x.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		require.NotZero(t, created.ID)
		assert.Equal(t, "first", created.FirstName)
		assert.Equal(t, "last", created.LastName)
		assert.Equal(t, "a@x.com", created.Email)

		w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched employee.Employee
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
		assert.Equal(t, created, fetched)

		w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fmt.Sprintf("Employee is deleted with ID: %d", created.ID), w.Body.String())

		w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
