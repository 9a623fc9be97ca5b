package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
	"github.com/alexanderramin/capstonehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newClient(t *testing.T, baseURL string) *hubclient.Client {
	t.Helper()
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.TimeoutMs = 2000
	client, err := hubclient.New(cfg)
	require.NoError(t, err)
	return client
}

// adminClient logs into hub as admin so writes are accepted.
func adminClient(t *testing.T, hub *testutil.FakeHub) *hubclient.Client {
	t.Helper()
	client := newClient(t, hub.URL())
	_, err := client.Do(context.Background(), http.MethodPost, "/api/auth/login",
		map[string]string{"password": testutil.FakeAdminPassword}, nil)
	require.NoError(t, err)
	return client
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) LoadFailed(_ context.Context, _ domain.Section, err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func TestStore_CreateThenList(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)
	ctx := context.Background()

	created, err := s.Create(ctx, testutil.NewTestDeliverable("Proposal"))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Proposal", created.Title)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, created.ID, snap.Items[0].ID)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created, items[0])
	assert.Equal(t, Loaded, s.Snapshot().State)
}

func TestStore_CreateRejectsDraftWithID(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)

	_, err := s.Create(context.Background(), testutil.NewTestDeliverable("X", testutil.WithID(4)))
	assert.ErrorIs(t, err, ErrDraftHasID)
	assert.Empty(t, hub.Requests(http.MethodPost)[1:], "only the login POST reached the server")
}

func TestStore_CreateFailureLeavesCache(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Fail(http.MethodPost, "/api/deliverables", http.StatusInternalServerError)
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)

	_, err := s.Create(context.Background(), testutil.NewTestDeliverable("X"))
	assert.ErrorIs(t, err, hubclient.ErrServer)
	assert.Empty(t, s.Snapshot().Items)
}

func TestStore_CreateWithoutIDInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"X"}`))
	}))
	defer srv.Close()
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.CSRFToken = "static"
	client, err := hubclient.New(cfg)
	require.NoError(t, err)

	s := New[domain.Deliverable](client, domain.SectionDeliverables)
	_, err = s.Create(context.Background(), domain.Deliverable{Title: "X"})
	assert.ErrorIs(t, err, hubclient.ErrInvalidResponse)
	assert.Empty(t, s.Snapshot().Items)
}

func TestStore_Update(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Seed(t, domain.SectionIntegrations, testutil.NewTestIntegration("Slack sync", "Slack", "Inactive"))
	s := New[domain.Integration](adminClient(t, hub), domain.SectionIntegrations)
	ctx := context.Background()

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	patch := items[0]
	patch.Status = "Active"
	updated, err := s.Update(ctx, patch.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Active", updated.Status)

	got, ok := s.Get(patch.ID)
	require.True(t, ok)
	assert.Equal(t, "Active", got.Status)
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestStore_RemoveSendsOneDeleteWithCSRFAndCookie(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Seed(t, domain.SectionDeliverables,
		testutil.NewTestDeliverable("A"),
		testutil.NewTestDeliverable("B"),
	)
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)
	ctx := context.Background()
	items, err := s.List(ctx)
	require.NoError(t, err)

	removed, err := s.Remove(ctx, items[0].ID, Confirmed)
	require.NoError(t, err)
	assert.True(t, removed)

	deletes := hub.Requests(http.MethodDelete)
	require.Len(t, deletes, 1)
	assert.Equal(t, hub.CSRFToken(), deletes[0].Header.Get(hubclient.CSRFHeader))
	assert.Contains(t, deletes[0].Header.Get("Cookie"), "session=")

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "B", snap.Items[0].Title)
	assert.Equal(t, 1, hub.Count(domain.SectionDeliverables))
}

func TestStore_RemoveDeclinedMakesNoRequest(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Seed(t, domain.SectionDeliverables, testutil.NewTestDeliverable("A"))
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)
	ctx := context.Background()
	items, err := s.List(ctx)
	require.NoError(t, err)

	var prompts []string
	decline := ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		prompts = append(prompts, prompt)
		return false, nil
	})

	removed, err := s.Remove(ctx, items[0].ID, decline)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []string{"Delete this deliverable?"}, prompts)
	assert.Empty(t, hub.Requests(http.MethodDelete))
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestStore_RemoveServerErrorKeepsEntry(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Seed(t, domain.SectionDeliverables, testutil.NewTestDeliverable("A", testutil.WithID(3)))
	hub.Fail(http.MethodDelete, "/api/deliverables/3", http.StatusInternalServerError)
	s := New[domain.Deliverable](adminClient(t, hub), domain.SectionDeliverables)
	ctx := context.Background()
	_, err := s.List(ctx)
	require.NoError(t, err)

	removed, err := s.Remove(ctx, 3, Confirmed)
	assert.False(t, removed)
	assert.ErrorIs(t, err, hubclient.ErrServer)
	_, ok := s.Get(3)
	assert.True(t, ok)
}

func TestStore_RemoveUnexpectedSuccessStatusKeepsEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":5,"title":"A"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer srv.Close()
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.CSRFToken = "static"
	client, err := hubclient.New(cfg)
	require.NoError(t, err)

	s := New[domain.Deliverable](client, domain.SectionDeliverables)
	ctx := context.Background()
	_, err = s.List(ctx)
	require.NoError(t, err)

	removed, err := s.Remove(ctx, 5, Confirmed)
	assert.False(t, removed)
	assert.ErrorIs(t, err, hubclient.ErrUnexpectedStatus)
	_, ok := s.Get(5)
	assert.True(t, ok)
}

func TestStore_ListFailureKeepsCacheAndReports(t *testing.T) {
	hub := testutil.NewFakeHub(t)
	hub.Seed(t, domain.SectionResearch, testutil.NewTestResearch("Interviews", domain.ResearchPrimary))
	rep := &recordingReporter{}
	s := New[domain.ResearchItem](newClient(t, hub.URL()), domain.SectionResearch, WithReporter(rep))
	ctx := context.Background()

	_, err := s.List(ctx)
	require.NoError(t, err)

	hub.Fail(http.MethodGet, "/api/research-items", http.StatusInternalServerError)
	_, err = s.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, hubclient.ErrServer)

	snap := s.Snapshot()
	assert.Equal(t, LoadFailed, snap.State)
	assert.Len(t, snap.Items, 1, "stale cache survives a failed refresh")
	assert.ErrorIs(t, snap.Err, hubclient.ErrServer)
	require.Len(t, rep.errs, 1)
}

func TestStore_ListMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":    `<html>oops</html>`,
		"wrong shape": `{"items":[]}`,
		"missing id":  `[{"name":"Zapier"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			s := New[domain.SoftwareTool](newClient(t, srv.URL), domain.SectionSoftwareTools)
			_, err := s.List(context.Background())
			assert.ErrorIs(t, err, hubclient.ErrInvalidResponse)
			assert.Equal(t, LoadFailed, s.Snapshot().State)
		})
	}
}

func TestStore_ListNullIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	s := New[domain.SoftwareTool](newClient(t, srv.URL), domain.SectionSoftwareTools)
	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, Loaded, s.Snapshot().State)
}

func TestStore_StaleListDiscarded(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstArrived)
			<-release
			_, _ = w.Write([]byte(`[{"id":1,"title":"old"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":2,"title":"new"}]`))
	}))
	defer srv.Close()

	s := New[domain.Deliverable](newClient(t, srv.URL), domain.SectionDeliverables)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() {
		_, err := s.List(ctx)
		errc <- err
	}()
	<-firstArrived

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Title)

	close(release)
	assert.True(t, errors.Is(<-errc, ErrStale))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new", snap.Items[0].Title)
}

func TestStore_ListSupersededByMutation(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			once.Do(func() { close(firstArrived) })
			<-release
			_, _ = w.Write([]byte(`[]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":10,"title":"fresh"}`))
		}
	}))
	defer srv.Close()
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.CSRFToken = "static"
	client, err := hubclient.New(cfg)
	require.NoError(t, err)

	s := New[domain.Deliverable](client, domain.SectionDeliverables)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() {
		_, err := s.List(ctx)
		errc <- err
	}()
	<-firstArrived

	_, err = s.Create(ctx, domain.Deliverable{Title: "fresh"})
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errc, ErrStale)
	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 10, snap.Items[0].ID)
}
