package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// searchIndex is the index every search operation targets.
const searchIndex = "g-cloud"

// serviceDocumentFields is the allowlist of service record fields copied
// into a search document. Anything outside it never reaches the index.
var serviceDocumentFields = []string{
	"lot",
	"serviceName",
	"serviceSummary",
	"serviceTypes",
	"serviceBenefits",
	"serviceFeatures",
	"networksConnected",
	"minimumContractPeriod",
	"terminationCost",
	"trialOption",
	"freeOption",
	"priceUnit",
	"priceInterval",
	"educationPricing",
	"vatIncluded",
	"openStandardsSupported",
	"supportForThirdParties",
	"incidentEscalation",
	"serviceOffboarding",
	"serviceOnboarding",
	"analyticsAvailable",
	"persistentStorage",
	"elasticCloud",
	"guaranteedResources",
	"selfServiceProvisioning",
	"openSource",
	"apiType",
	"apiAccess",
	"offlineWorking",
	"dataExtractionRemoval",
	"dataBackupRecovery",
	"datacentreTier",
	"datacentresSpecifyLocation",
	"datacentresEUCode",
}

// SearchClient wraps the marketplace Search API. When the client is
// disabled, indexing operations skip the network entirely and report an
// absent result, letting applications run without a search backend.
type SearchClient struct {
	*Client
	enabled bool
}

// SearchConfig extends Config with the search-specific enabled flag.
type SearchConfig struct {
	Config

	// Enabled gates Index and Delete. Search queries are issued
	// regardless.
	Enabled bool
}

// NewSearchClient creates a Search API client from cfg.
func NewSearchClient(cfg SearchConfig) (*SearchClient, error) {
	client, err := NewClient(cfg.Config)
	if err != nil {
		return nil, err
	}
	return &SearchClient{Client: client, enabled: cfg.Enabled}, nil
}

// Enabled reports whether indexing operations reach the network.
func (c *SearchClient) Enabled() bool { return c.enabled }

// SetEnabled overwrites the enabled flag, the search half of the
// initialisation step Reconfigure covers for connection settings.
func (c *SearchClient) SetEnabled(enabled bool) { c.enabled = enabled }

// Index converts the service record into a search document and puts it
// into the index under serviceID. Returns (nil, nil) without any network
// call when the client is disabled.
func (c *SearchClient) Index(ctx context.Context, serviceID string, service map[string]any, supplierName, frameworkName string) (map[string]any, error) {
	if !c.enabled {
		c.logger.Debug("search disabled, skipping index", "service_id", serviceID)
		return nil, nil
	}
	doc := ConvertService(serviceID, service, supplierName, frameworkName)
	return c.Request(ctx, http.MethodPut, "/"+searchIndex+"/services/"+serviceID, nil, doc)
}

// Delete removes a service from the index. Returns (nil, nil) without any
// network call when the client is disabled.
func (c *SearchClient) Delete(ctx context.Context, serviceID string) (map[string]any, error) {
	if !c.enabled {
		c.logger.Debug("search disabled, skipping delete", "service_id", serviceID)
		return nil, nil
	}
	return c.Request(ctx, http.MethodDelete, "/"+searchIndex+"/services/"+serviceID, nil, nil)
}

// SearchQuery describes one search request. Zero values are omitted from
// the outgoing query string.
type SearchQuery struct {
	// Text is the free-text query.
	Text string

	// Page selects a result page when positive.
	Page int

	// Filters restricts results per field; each value becomes a
	// repeated filter_<field> parameter.
	Filters map[string][]string
}

// SearchServices runs a service search.
func (c *SearchClient) SearchServices(ctx context.Context, q SearchQuery) (map[string]any, error) {
	query := url.Values{}
	if q.Text != "" {
		query.Set("q", q.Text)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	for field, values := range q.Filters {
		for _, value := range values {
			query.Add("filter_"+field, value)
		}
	}
	return c.Request(ctx, http.MethodGet, "/"+searchIndex+"/services/search", query, nil)
}

// ConvertService projects a service record into the document shape the
// search index accepts: the allowlisted fields that are present in the
// record, plus the id, supplier name and framework name. Fields absent
// from the record stay absent from the document. Pure; the input record
// is not modified.
func ConvertService(serviceID string, service map[string]any, supplierName, frameworkName string) map[string]any {
	doc := map[string]any{
		"id":            serviceID,
		"supplierName":  supplierName,
		"frameworkName": frameworkName,
	}
	for _, field := range serviceDocumentFields {
		if value, ok := service[field]; ok {
			doc[field] = value
		}
	}
	return map[string]any{"service": doc}
}
