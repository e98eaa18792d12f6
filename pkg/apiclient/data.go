package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DataClient wraps the marketplace Data API: service listings, users,
// suppliers and draft services. Each method maps its typed arguments onto
// one request; error normalisation is documented per method where it
// differs from the base client's behaviour.
type DataClient struct {
	*Client
}

// NewDataClient creates a Data API client from cfg.
func NewDataClient(cfg Config) (*DataClient, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &DataClient{Client: client}, nil
}

// GetStatus fetches the API's status endpoint.
func (c *DataClient) GetStatus(ctx context.Context) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, "/_status", nil, nil)
}

// FindServicesOptions narrows a FindServices listing. Nil fields are
// omitted from the query.
type FindServicesOptions struct {
	SupplierID *int
	Page       *int
}

// FindServices lists services, optionally filtered by supplier and paged.
func (c *DataClient) FindServices(ctx context.Context, opts FindServicesOptions) (map[string]any, error) {
	query := url.Values{}
	if opts.SupplierID != nil {
		query.Set("supplier_id", strconv.Itoa(*opts.SupplierID))
	}
	if opts.Page != nil {
		query.Set("page", strconv.Itoa(*opts.Page))
	}
	return c.Request(ctx, http.MethodGet, "/services", query, nil)
}

// GetService fetches a service by id. A 404 means the service does not
// exist and returns (nil, nil); any other failure propagates.
func (c *DataClient) GetService(ctx context.Context, serviceID string) (map[string]any, error) {
	result, err := c.Request(ctx, http.MethodGet, "/services/"+serviceID, nil, nil)
	if IsNotFound(err) {
		return nil, nil
	}
	return result, err
}

// CreateService creates a service listing at a known id.
func (c *DataClient) CreateService(ctx context.Context, serviceID string, service map[string]any, updatedBy, reason string) (map[string]any, error) {
	body := map[string]any{
		"update_details": updateDetails(updatedBy, reason),
		"services":       service,
	}
	return c.Request(ctx, http.MethodPut, "/services/"+serviceID, nil, body)
}

// UpdateService applies changes to an existing service listing.
func (c *DataClient) UpdateService(ctx context.Context, serviceID string, service map[string]any, updatedBy, reason string) (map[string]any, error) {
	body := map[string]any{
		"update_details": updateDetails(updatedBy, reason),
		"services":       service,
	}
	return c.Request(ctx, http.MethodPost, "/services/"+serviceID, nil, body)
}

// UpdateServiceStatus moves a service to the given status, e.g.
// "published" or "disabled".
func (c *DataClient) UpdateServiceStatus(ctx context.Context, serviceID, status, updatedBy, reason string) (map[string]any, error) {
	path := fmt.Sprintf("/services/%s/status/%s", serviceID, status)
	body := map[string]any{"update_details": updateDetails(updatedBy, reason)}
	return c.Request(ctx, http.MethodPost, path, nil, body)
}

// GetUserOptions selects the user lookup key. Exactly one of UserID and
// EmailAddress must be set.
type GetUserOptions struct {
	UserID       *int
	EmailAddress *string
}

// ErrUserLookupArguments is returned by GetUser when the options carry
// both lookup keys or neither. No request is made in that case.
var ErrUserLookupArguments = errors.New("apiclient: exactly one of user id and email address must be given")

// GetUser fetches a user by id or by email address. A 404 returns
// (nil, nil).
func (c *DataClient) GetUser(ctx context.Context, opts GetUserOptions) (map[string]any, error) {
	if (opts.UserID != nil) == (opts.EmailAddress != nil) {
		return nil, ErrUserLookupArguments
	}

	var result map[string]any
	var err error
	if opts.UserID != nil {
		result, err = c.Request(ctx, http.MethodGet, "/users/"+strconv.Itoa(*opts.UserID), nil, nil)
	} else {
		query := url.Values{}
		query.Set("email", *opts.EmailAddress)
		result, err = c.Request(ctx, http.MethodGet, "/users", query, nil)
	}

	if IsNotFound(err) {
		return nil, nil
	}
	return result, err
}

// AuthenticateUser checks a supplier user's credentials. Authentication
// failures the API reports as 400, 403 or 404 all return (nil, nil), as
// does a success response whose user record carries no supplier; other
// failures propagate.
func (c *DataClient) AuthenticateUser(ctx context.Context, emailAddress, password string) (map[string]any, error) {
	body := map[string]any{
		"authUsers": map[string]any{
			"emailAddress": emailAddress,
			"password":     password,
		},
	}

	result, err := c.Request(ctx, http.MethodPost, "/users/auth", nil, body)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.Status {
			case 400, 403, 404:
				return nil, nil
			}
		}
		return nil, err
	}

	if user, ok := result["users"].(map[string]any); !ok || user["supplier"] == nil {
		return nil, nil
	}
	return result, nil
}

// CreateUser creates a user from the given record.
func (c *DataClient) CreateUser(ctx context.Context, user map[string]any) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, "/users", nil, map[string]any{"users": user})
}

// UpdateUserPassword sets a new password for the user, reporting only
// whether the update took. Every failure collapses to false.
func (c *DataClient) UpdateUserPassword(ctx context.Context, userID int, newPassword string) bool {
	body := map[string]any{
		"users": map[string]any{"password": newPassword},
	}
	_, err := c.Request(ctx, http.MethodPost, "/users/"+strconv.Itoa(userID), nil, body)
	if err != nil {
		c.logger.Warn("password update failed", "user_id", userID, "error", err)
		return false
	}
	return true
}

// FindSuppliersOptions narrows a FindSuppliers listing. Nil fields are
// omitted from the query.
type FindSuppliersOptions struct {
	Prefix *string
	Page   *int
}

// FindSuppliers lists suppliers, optionally by name prefix and paged.
func (c *DataClient) FindSuppliers(ctx context.Context, opts FindSuppliersOptions) (map[string]any, error) {
	query := url.Values{}
	if opts.Prefix != nil {
		query.Set("prefix", *opts.Prefix)
	}
	if opts.Page != nil {
		query.Set("page", strconv.Itoa(*opts.Page))
	}
	return c.Request(ctx, http.MethodGet, "/suppliers", query, nil)
}

// GetSupplier fetches a supplier by id.
func (c *DataClient) GetSupplier(ctx context.Context, supplierID int) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, "/suppliers/"+strconv.Itoa(supplierID), nil, nil)
}

// CreateSupplier creates a supplier at a known id.
func (c *DataClient) CreateSupplier(ctx context.Context, supplierID int, supplier map[string]any) (map[string]any, error) {
	body := map[string]any{"suppliers": supplier}
	return c.Request(ctx, http.MethodPut, "/suppliers/"+strconv.Itoa(supplierID), nil, body)
}

// UpdateSupplier applies changes to a supplier record.
func (c *DataClient) UpdateSupplier(ctx context.Context, supplierID int, supplier map[string]any, updatedBy string) (map[string]any, error) {
	body := map[string]any{
		"suppliers":  supplier,
		"updated_by": updatedBy,
	}
	return c.Request(ctx, http.MethodPost, "/suppliers/"+strconv.Itoa(supplierID), nil, body)
}

// UpdateContactInformation applies changes to one of a supplier's contact
// information records.
func (c *DataClient) UpdateContactInformation(ctx context.Context, supplierID, contactID int, contact map[string]any, updatedBy string) (map[string]any, error) {
	path := fmt.Sprintf("/suppliers/%d/contact-information/%d", supplierID, contactID)
	body := map[string]any{
		"contactInformation": contact,
		"updated_by":         updatedBy,
	}
	return c.Request(ctx, http.MethodPost, path, nil, body)
}

// FindDraftServices lists a supplier's draft services.
func (c *DataClient) FindDraftServices(ctx context.Context, supplierID int) (map[string]any, error) {
	query := url.Values{}
	query.Set("supplier_id", strconv.Itoa(supplierID))
	return c.Request(ctx, http.MethodGet, "/draft-services", query, nil)
}

// GetDraftService fetches the draft copy of a service.
func (c *DataClient) GetDraftService(ctx context.Context, serviceID string) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, "/services/"+serviceID+"/draft", nil, nil)
}

// CreateDraftService creates a draft copy of a live service.
func (c *DataClient) CreateDraftService(ctx context.Context, serviceID, updatedBy string) (map[string]any, error) {
	body := map[string]any{"update_details": draftUpdateDetails(updatedBy)}
	return c.Request(ctx, http.MethodPut, "/services/"+serviceID+"/draft", nil, body)
}

// UpdateDraftService applies changes to a draft service.
func (c *DataClient) UpdateDraftService(ctx context.Context, serviceID string, service map[string]any, updatedBy string) (map[string]any, error) {
	body := map[string]any{
		"services":       service,
		"update_details": draftUpdateDetails(updatedBy),
	}
	return c.Request(ctx, http.MethodPost, "/services/"+serviceID+"/draft", nil, body)
}

// DeleteDraftService discards a draft service.
func (c *DataClient) DeleteDraftService(ctx context.Context, serviceID, updatedBy string) (map[string]any, error) {
	body := map[string]any{"update_details": draftUpdateDetails(updatedBy)}
	return c.Request(ctx, http.MethodDelete, "/services/"+serviceID+"/draft", nil, body)
}

// LaunchDraftService publishes a draft service, replacing the live copy.
func (c *DataClient) LaunchDraftService(ctx context.Context, serviceID, updatedBy string) (map[string]any, error) {
	body := map[string]any{"update_details": draftUpdateDetails(updatedBy)}
	return c.Request(ctx, http.MethodPost, "/services/"+serviceID+"/draft/publish", nil, body)
}

func updateDetails(updatedBy, reason string) map[string]any {
	return map[string]any{
		"updated_by":    updatedBy,
		"update_reason": reason,
	}
}

// The draft endpoints predate per-call update reasons; the API still
// requires the field, so they send the fixed value it expects.
func draftUpdateDetails(updatedBy string) map[string]any {
	return updateDetails(updatedBy, "deprecated")
}
