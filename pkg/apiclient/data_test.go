package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the API saw for payload assertions.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// dataClientFixture serves canned responses and records every request.
type dataClientFixture struct {
	client   *DataClient
	status   int
	response string
	requests []recordedRequest
}

func newDataClientFixture(t *testing.T) *dataClientFixture {
	t.Helper()
	f := &dataClientFixture{status: http.StatusOK, response: `{}`}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
		}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		f.requests = append(f.requests, rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(f.response))
	}))
	t.Cleanup(server.Close)

	client, err := NewDataClient(Config{BaseURL: server.URL, AuthToken: "auth-token"})
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *dataClientFixture) respond(status int, body string) {
	f.status = status
	f.response = body
}

func (f *dataClientFixture) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestDataClient_GetStatus(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"status": "ok"}`)

	result, err := f.client.GetStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "/_status", f.lastRequest(t).Path)
}

func TestDataClient_FindServices(t *testing.T) {
	tests := []struct {
		name      string
		opts      FindServicesOptions
		wantQuery string
	}{
		{name: "no options", opts: FindServicesOptions{}, wantQuery: ""},
		{name: "page", opts: FindServicesOptions{Page: intPtr(2)}, wantQuery: "page=2"},
		{name: "supplier id", opts: FindServicesOptions{SupplierID: intPtr(1)}, wantQuery: "supplier_id=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDataClientFixture(t)
			f.respond(200, `{"services": "result"}`)

			result, err := f.client.FindServices(context.Background(), tt.opts)

			require.NoError(t, err)
			assert.Equal(t, map[string]any{"services": "result"}, result)
			req := f.lastRequest(t)
			assert.Equal(t, "/services", req.Path)
			assert.Equal(t, tt.wantQuery, req.Query)
		})
	}
}

func TestDataClient_GetService(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"services": "result"}`)

		result, err := f.client.GetService(context.Background(), "123")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"services": "result"}, result)
		assert.Equal(t, "/services/123", f.lastRequest(t).Path)
	})

	t.Run("404 returns absent result", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(404, `{"services": "result"}`)

		result, err := f.client.GetService(context.Background(), "123")

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(400, `{"error": "bad request"}`)

		_, err := f.client.GetService(context.Background(), "123")

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.StatusCode())
	})
}

func TestDataClient_CreateService(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(201, `{"services": "result"}`)

	result, err := f.client.CreateService(context.Background(), "123", map[string]any{"foo": "bar"}, "person", "reason")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"services": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/services/123", req.Path)
	assert.Equal(t, map[string]any{
		"services": map[string]any{"foo": "bar"},
		"update_details": map[string]any{
			"updated_by":    "person",
			"update_reason": "reason",
		},
	}, req.Body)
}

func TestDataClient_UpdateService(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"services": "result"}`)

	result, err := f.client.UpdateService(context.Background(), "123", map[string]any{"foo": "bar"}, "person", "reason")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"services": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/services/123", req.Path)
}

func TestDataClient_UpdateServiceStatus(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"services": "result"}`)

	result, err := f.client.UpdateServiceStatus(context.Background(), "123", "published", "person", "reason")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"services": "result"}, result)
	assert.Equal(t, "/services/123/status/published", f.lastRequest(t).Path)
}

func TestDataClient_GetUser(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"users": {"id": 1234}}`)

		result, err := f.client.GetUser(context.Background(), GetUserOptions{UserID: intPtr(1234)})

		require.NoError(t, err)
		assert.NotNil(t, result["users"])
		req := f.lastRequest(t)
		assert.Equal(t, "/users/1234", req.Path)
		assert.Empty(t, req.Query)
	})

	t.Run("by email address", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"users": {"id": 1234}}`)

		_, err := f.client.GetUser(context.Background(), GetUserOptions{EmailAddress: strPtr("myemail")})

		require.NoError(t, err)
		req := f.lastRequest(t)
		assert.Equal(t, "/users", req.Path)
		assert.Equal(t, "email=myemail", req.Query)
	})

	t.Run("both keys is an input error", func(t *testing.T) {
		f := newDataClientFixture(t)

		_, err := f.client.GetUser(context.Background(), GetUserOptions{
			UserID:       intPtr(123),
			EmailAddress: strPtr("myemail"),
		})

		assert.ErrorIs(t, err, ErrUserLookupArguments)
		assert.Empty(t, f.requests, "no request must be made")
	})

	t.Run("neither key is an input error", func(t *testing.T) {
		f := newDataClientFixture(t)

		_, err := f.client.GetUser(context.Background(), GetUserOptions{})

		assert.ErrorIs(t, err, ErrUserLookupArguments)
		assert.Empty(t, f.requests)
	})

	t.Run("404 returns absent result", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(404, `{"not": "found"}`)

		result, err := f.client.GetUser(context.Background(), GetUserOptions{UserID: intPtr(123)})

		require.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestDataClient_AuthenticateUser(t *testing.T) {
	supplierUser := `{"users": {"id": "id", "email_address": "email_address", "supplier": {"supplier_id": 1234, "name": "name"}}}`

	t.Run("success", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, supplierUser)

		result, err := f.client.AuthenticateUser(context.Background(), "email_address", "password")

		require.NoError(t, err)
		user := result["users"].(map[string]any)
		assert.Equal(t, "id", user["id"])
		assert.Equal(t, "email_address", user["email_address"])

		req := f.lastRequest(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/users/auth", req.Path)
		assert.Equal(t, map[string]any{
			"authUsers": map[string]any{
				"emailAddress": "email_address",
				"password":     "password",
			},
		}, req.Body)
	})

	for _, status := range []int{400, 403, 404} {
		t.Run("absent result on auth failure status", func(t *testing.T) {
			f := newDataClientFixture(t)
			f.respond(status, `{"authorization": false}`)

			result, err := f.client.AuthenticateUser(context.Background(), "email_address", "password")

			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}

	t.Run("absent result for non-supplier user", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"users": {"id": "id", "email_address": "email_address"}}`)

		result, err := f.client.AuthenticateUser(context.Background(), "email_address", "password")

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("server errors propagate", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(500, `{"authorization": false}`)

		_, err := f.client.AuthenticateUser(context.Background(), "email_address", "password")

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 500, httpErr.StatusCode())
	})
}

func TestDataClient_CreateUser(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(201, `{"users": "result"}`)

	result, err := f.client.CreateUser(context.Background(), map[string]any{"foo": "bar"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"users": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, "/users", req.Path)
	assert.Equal(t, map[string]any{"users": map[string]any{"foo": "bar"}}, req.Body)
}

func TestDataClient_UpdateUserPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{}`)

		ok := f.client.UpdateUserPassword(context.Background(), 123, "newpassword")

		assert.True(t, ok)
		req := f.lastRequest(t)
		assert.Equal(t, "/users/123", req.Path)
		assert.Equal(t, map[string]any{
			"users": map[string]any{"password": "newpassword"},
		}, req.Body)
	})

	for _, status := range []int{400, 403, 404, 500} {
		t.Run("failure collapses to false", func(t *testing.T) {
			f := newDataClientFixture(t)
			f.respond(status, `{}`)

			assert.False(t, f.client.UpdateUserPassword(context.Background(), 123, "newpassword"))
		})
	}
}

func TestDataClient_FindSuppliers(t *testing.T) {
	tests := []struct {
		name      string
		opts      FindSuppliersOptions
		wantQuery string
	}{
		{name: "no options", opts: FindSuppliersOptions{}, wantQuery: ""},
		{name: "prefix", opts: FindSuppliersOptions{Prefix: strPtr("a")}, wantQuery: "prefix=a"},
		{name: "page", opts: FindSuppliersOptions{Page: intPtr(2)}, wantQuery: "page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDataClientFixture(t)
			f.respond(200, `{"suppliers": "result"}`)

			result, err := f.client.FindSuppliers(context.Background(), tt.opts)

			require.NoError(t, err)
			assert.Equal(t, map[string]any{"suppliers": "result"}, result)
			req := f.lastRequest(t)
			assert.Equal(t, "/suppliers", req.Path)
			assert.Equal(t, tt.wantQuery, req.Query)
		})
	}
}

func TestDataClient_GetSupplier(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"suppliers": "result"}`)

	result, err := f.client.GetSupplier(context.Background(), 123)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"suppliers": "result"}, result)
	assert.Equal(t, "/suppliers/123", f.lastRequest(t).Path)
}

func TestDataClient_CreateSupplier(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(201, `{"suppliers": "result"}`)

	result, err := f.client.CreateSupplier(context.Background(), 123, map[string]any{"foo": "bar"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"suppliers": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/suppliers/123", req.Path)
	assert.Equal(t, map[string]any{"suppliers": map[string]any{"foo": "bar"}}, req.Body)
}

func TestDataClient_UpdateSupplier(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(201, `{"suppliers": "result"}`)

	result, err := f.client.UpdateSupplier(context.Background(), 123, map[string]any{"foo": "bar"}, "supplier")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"suppliers": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, map[string]any{
		"suppliers":  map[string]any{"foo": "bar"},
		"updated_by": "supplier",
	}, req.Body)
}

func TestDataClient_UpdateContactInformation(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(201, `{"suppliers": "result"}`)

	result, err := f.client.UpdateContactInformation(context.Background(), 123, 2, map[string]any{"foo": "bar"}, "supplier")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"suppliers": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, "/suppliers/123/contact-information/2", req.Path)
	assert.Equal(t, map[string]any{
		"contactInformation": map[string]any{"foo": "bar"},
		"updated_by":         "supplier",
	}, req.Body)
}

func TestDataClient_FindDraftServices(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"draft-services": "result"}`)

	result, err := f.client.FindDraftServices(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"draft-services": "result"}, result)
	req := f.lastRequest(t)
	assert.Equal(t, "/draft-services", req.Path)
	assert.Equal(t, "supplier_id=2", req.Query)
}

func TestDataClient_GetDraftService(t *testing.T) {
	f := newDataClientFixture(t)
	f.respond(200, `{"draft-services": "result"}`)

	result, err := f.client.GetDraftService(context.Background(), "2")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"draft-services": "result"}, result)
	assert.Equal(t, "/services/2/draft", f.lastRequest(t).Path)
}

func TestDataClient_DraftLifecycle(t *testing.T) {
	wantDetails := map[string]any{
		"update_details": map[string]any{
			"updated_by":    "user",
			"update_reason": "deprecated",
		},
	}

	t.Run("create", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(201, `{"done": "it"}`)

		result, err := f.client.CreateDraftService(context.Background(), "2", "user")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"done": "it"}, result)
		req := f.lastRequest(t)
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/services/2/draft", req.Path)
		assert.Equal(t, wantDetails, req.Body)
	})

	t.Run("update", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"done": "it"}`)

		result, err := f.client.UpdateDraftService(context.Background(), "2", map[string]any{"field": "value"}, "user")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"done": "it"}, result)
		req := f.lastRequest(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, map[string]any{
			"services":       map[string]any{"field": "value"},
			"update_details": wantDetails["update_details"],
		}, req.Body)
	})

	t.Run("delete", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"done": "it"}`)

		result, err := f.client.DeleteDraftService(context.Background(), "2", "user")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"done": "it"}, result)
		req := f.lastRequest(t)
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/services/2/draft", req.Path)
		assert.Equal(t, wantDetails, req.Body)
	})

	t.Run("launch", func(t *testing.T) {
		f := newDataClientFixture(t)
		f.respond(200, `{"done": "it"}`)

		result, err := f.client.LaunchDraftService(context.Background(), "2", "user")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"done": "it"}, result)
		req := f.lastRequest(t)
		assert.Equal(t, "/services/2/draft/publish", req.Path)
		assert.Equal(t, wantDetails, req.Body)
	})
}
