// Package lms is the HTTP client for the external Learning Management
// System. It covers exactly the two capabilities the combine flow consumes:
// the bookmark-paginated enrollments listing and the org-unit lookup by
// code. The LMS owns every wire shape here; nothing is persisted.
package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

// OrgUnit is one course offering as the LMS reports it.
type OrgUnit struct {
	ID   int64
	Name string
	Code string
}

// Page is one page of the enrollments listing together with its cursor.
type Page struct {
	Items    []OrgUnit
	Bookmark string
	HasMore  bool
}

// RequestSigner authenticates outgoing LMS requests. IDKeySigner is the
// production implementation.
type RequestSigner interface {
	Sign(req *http.Request) error
}

// SignerFunc adapts a function to the RequestSigner interface.
type SignerFunc func(req *http.Request) error

func (f SignerFunc) Sign(req *http.Request) error { return f(req) }

// Client talks to the LMS API.
type Client struct {
	httpClient    *http.Client
	scheme        string
	host          string
	apiVersion    string
	roleID        string
	orgUnitTypeID string
	signer        RequestSigner
	logger        *zap.Logger
}

// NewClient constructs a Client from the LMS configuration.
func NewClient(cfg config.LMSConfig, signer RequestSigner, logger *zap.Logger) *Client {
	if signer == nil {
		signer = SignerFunc(func(*http.Request) error { return nil })
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		scheme:        cfg.Scheme,
		host:          cfg.Host,
		apiVersion:    cfg.APIVersion,
		roleID:        cfg.RoleID,
		orgUnitTypeID: cfg.OrgUnitTypeID,
		signer:        signer,
		logger:        logger,
	}
}

// enrollment listing wire shapes

type orgUnitInfo struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
	Code string `json:"Code"`
}

type enrollmentItem struct {
	OrgUnit orgUnitInfo `json:"OrgUnit"`
}

type pagingInfo struct {
	Bookmark     string `json:"Bookmark"`
	HasMoreItems bool   `json:"HasMoreItems"`
}

type enrollmentsEnvelope struct {
	Items      []enrollmentItem `json:"Items"`
	PagingInfo pagingInfo       `json:"PagingInfo"`
}

// org structure lookup wire shape; here the LMS reports the id as a string.

type orgStructureItem struct {
	Identifier string `json:"Identifier"`
	Name       string `json:"Name"`
	Code       string `json:"Code"`
}

type orgStructureEnvelope struct {
	Items []orgStructureItem `json:"Items"`
}

// ListEnrollments fetches one page of the user's instructor enrollments.
// An empty bookmark requests the first page.
func (c *Client) ListEnrollments(ctx context.Context, userID, bookmark string) (*Page, error) {
	params := url.Values{}
	params.Set("roleId", c.roleID)
	params.Set("orgUnitTypeId", c.orgUnitTypeID)
	if bookmark != "" {
		params.Set("bookmark", bookmark)
	}

	path := fmt.Sprintf("/d2l/api/lp/%s/enrollments/users/%s/orgUnits/", c.apiVersion, url.PathEscape(userID))

	var envelope enrollmentsEnvelope
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return nil, err
	}

	page := &Page{
		Items:    make([]OrgUnit, 0, len(envelope.Items)),
		Bookmark: envelope.PagingInfo.Bookmark,
		HasMore:  envelope.PagingInfo.HasMoreItems,
	}
	for _, item := range envelope.Items {
		page.Items = append(page.Items, OrgUnit{ID: item.OrgUnit.ID, Name: item.OrgUnit.Name, Code: item.OrgUnit.Code})
	}
	return page, nil
}

// FindOrgUnitByCode looks up org units matching an exact code. Zero or one
// item is expected in practice.
func (c *Client) FindOrgUnitByCode(ctx context.Context, code string) ([]OrgUnit, error) {
	params := url.Values{}
	params.Set("orgUnitCode", code)
	params.Set("orgUnitType", c.orgUnitTypeID)

	path := fmt.Sprintf("/d2l/api/lp/%s/orgstructure/", c.apiVersion)

	var envelope orgStructureEnvelope
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return nil, err
	}

	units := make([]OrgUnit, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		id, err := strconv.ParseInt(item.Identifier, 10, 64)
		if err != nil {
			c.logger.Warn("skipping org unit with non-numeric identifier",
				zap.String("identifier", item.Identifier), zap.String("code", item.Code))
			continue
		}
		units = append(units, OrgUnit{ID: id, Name: item.Name, Code: item.Code})
	}
	return units, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := url.URL{Scheme: c.scheme, Host: c.host, Path: path, RawQuery: params.Encode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemoteFetch.Code, appErrors.ErrRemoteFetch.Status, "failed to build LMS request")
	}
	if err := c.signer.Sign(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemoteFetch.Code, appErrors.ErrRemoteFetch.Status, "failed to sign LMS request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemoteFetch.Code, appErrors.ErrRemoteFetch.Status, appErrors.ErrRemoteFetch.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("LMS request failed", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return appErrors.Clone(appErrors.ErrRemoteFetch, fmt.Sprintf("LMS responded with status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemoteFetch.Code, appErrors.ErrRemoteFetch.Status, "failed to decode LMS response")
	}
	return nil
}
