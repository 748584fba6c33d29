package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/menu"
)

// HTTPSource : 走後台REST API的讀取來源
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource : 建立HTTP來源，client為nil時使用預設逾時的client
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// FetchMenu : GET /menu
func (s *HTTPSource) FetchMenu(ctx context.Context) ([]menu.Node, error) {
	var tree []menu.Node
	if err := s.getJSON(ctx, "/menu", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// FetchPermissionItems : GET /permission_item
func (s *HTTPSource) FetchPermissionItems(ctx context.Context) ([]authz.PermissionItem, error) {
	var items []authz.PermissionItem
	if err := s.getJSON(ctx, "/permission_item", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchEndpoints : GET /api_endpoints，回應為 群組名稱 -> 端點清單，攤平後回傳
func (s *HTTPSource) FetchEndpoints(ctx context.Context) ([]authz.Endpoint, error) {
	var grouped map[string][]authz.Endpoint
	if err := s.getJSON(ctx, "/api_endpoints", nil, &grouped); err != nil {
		return nil, err
	}
	endpoints := []authz.Endpoint{}
	for group, eps := range grouped {
		for _, ep := range eps {
			if ep.Group == "" {
				ep.Group = group
			}
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints, nil
}

// FetchUserPolicies : GET /casbin/policies/get_user_policies?username=…
func (s *HTTPSource) FetchUserPolicies(ctx context.Context, username string) ([]authz.Policy, error) {
	var policies []authz.Policy
	query := url.Values{"username": {username}}
	if err := s.getJSON(ctx, "/casbin/policies/get_user_policies", query, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// FetchRolePolicies : GET /casbin/policies/get_role_policies?role=…
func (s *HTTPSource) FetchRolePolicies(ctx context.Context, role string) ([]authz.Policy, error) {
	var policies []authz.Policy
	query := url.Values{"role": {role}}
	if err := s.getJSON(ctx, "/casbin/policies/get_role_policies", query, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// FetchUserRoles : GET /casbin/policies?policy_type=g，取出該使用者的角色
func (s *HTTPSource) FetchUserRoles(ctx context.Context, username string) ([]string, error) {
	var rules []authz.GroupRule
	query := url.Values{"policy_type": {"g"}}
	if err := s.getJSON(ctx, "/casbin/policies", query, &rules); err != nil {
		return nil, err
	}
	roles := []string{}
	for _, r := range rules {
		if r.User == username {
			roles = append(roles, r.Role)
		}
	}
	return roles, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
