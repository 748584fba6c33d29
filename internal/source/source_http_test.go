package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"menu_projection_system/internal/authz"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMenuDecodesTree(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menu" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"root","name":"系統管理","children":[{"id":"a","name":"訂單管理","parentId":"root"}]}]`))
	})

	s := NewHTTPSource(srv.URL, nil)
	tree, err := s.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "root" || len(tree[0].Children) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestFetchEndpointsFlattensGroups(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api_endpoints" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"訂單":[{"id":"order:list","method":"GET","path":"/orders"}],"價卡":[{"id":"price:list","method":"GET","path":"/pricecards","group":"自帶群組"}]}`))
	})

	s := NewHTTPSource(srv.URL, nil)
	endpoints, err := s.FetchEndpoints(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}

	byID := authz.EndpointIndex(endpoints)
	if byID["order:list"].Group != "訂單" {
		t.Fatalf("missing group should be filled from the map key, got %q", byID["order:list"].Group)
	}
	if byID["price:list"].Group != "自帶群組" {
		t.Fatalf("endpoint-declared group must win, got %q", byID["price:list"].Group)
	}
}

func TestFetchUserPoliciesSendsUsername(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/casbin/policies/get_user_policies" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("username"); got != "ops_wang" {
			t.Fatalf("expected username query, got %q", got)
		}
		w.Write([]byte(`[{"sub":"ops_wang","obj":"/orders","act":"GET","eft":"allow"}]`))
	})

	s := NewHTTPSource(srv.URL, nil)
	policies, err := s.FetchUserPolicies(context.Background(), "ops_wang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/orders" {
		t.Fatalf("unexpected policies: %+v", policies)
	}
}

func TestFetchUserRolesFiltersByUser(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/casbin/policies" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("policy_type"); got != "g" {
			t.Fatalf("expected policy_type=g, got %q", got)
		}
		w.Write([]byte(`[{"user":"ops_wang","role":"ops"},{"user":"ops_wang","role":"finance"},{"user":"someone","role":"admin"}]`))
	})

	s := NewHTTPSource(srv.URL, nil)
	roles, err := s.FetchUserRoles(context.Background(), "ops_wang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 2 || roles[0] != "ops" || roles[1] != "finance" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNon200IsError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s := NewHTTPSource(srv.URL, nil)
	if _, err := s.FetchMenu(context.Background()); err == nil {
		t.Fatal("expected error on 500 response")
	}
}
