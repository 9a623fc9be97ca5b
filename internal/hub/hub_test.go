package hub

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
	"github.com/alexanderramin/capstonehub/internal/service"
	"github.com/alexanderramin/capstonehub/internal/store"
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

func newHub(t *testing.T, fake *testutil.FakeHub) *Hub {
	t.Helper()
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = fake.URL()
	cfg.TimeoutMs = 2000
	client, err := hubclient.New(cfg)
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	return New(Deps{
		Transport: client,
		AuthPath:  cfg.AuthPath,
		Options:   service.NewOptionService(testutil.NewTestUoW(database)),
	})
}

func loginAdmin(t *testing.T, h *Hub) {
	t.Helper()
	session, err := h.Auth.Login(context.Background(), testutil.FakeAdminPassword)
	require.NoError(t, err)
	require.True(t, session.IsAdmin())
}

func TestLoadAll_SettlesEverySection(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	fake.Seed(t, domain.SectionDeliverables, testutil.NewTestDeliverable("Proposal"))
	fake.Seed(t, domain.SectionResearch, testutil.NewTestResearch("Survey", domain.ResearchPrimary))
	fake.Fail(http.MethodGet, domain.SectionProcesses.APIPath(), http.StatusInternalServerError)
	h := newHub(t, fake)

	err := h.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, hubclient.ErrServer)

	for _, sec := range domain.Sections {
		snap := h.Snapshot(sec)
		if sec == domain.SectionProcesses {
			assert.Equal(t, store.LoadFailed, snap.State, sec)
			continue
		}
		assert.Equal(t, store.Loaded, snap.State, sec)
	}
	assert.Len(t, h.Snapshot(domain.SectionDeliverables).Items, 1)
	assert.Len(t, h.Snapshot(domain.SectionResearch).Items, 1)
	assert.Empty(t, h.Snapshot(domain.SectionIntegrations).Items)
}

func TestLoadAll_NoFailures(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	h := newHub(t, fake)

	require.NoError(t, h.LoadAll(context.Background()))
	assert.Len(t, fake.Requests(http.MethodGet), len(domain.Sections))
}

func TestView_AppliesSectionFilters(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	fake.Seed(t, domain.SectionDeliverables,
		testutil.NewTestDeliverable("Proposal", testutil.WithPhase(domain.PhaseFoundation)),
		testutil.NewTestDeliverable("Survey", testutil.WithPhase(domain.PhaseResearch)),
		testutil.NewTestDeliverable("Interviews", testutil.WithPhase(domain.PhaseResearch), testutil.WithStatus(domain.StatusCompleted)),
	)
	h := newHub(t, fake)
	require.NoError(t, h.List(context.Background(), domain.SectionDeliverables))

	snap := h.View(domain.SectionDeliverables, map[string]string{"phase": "Research", "status": "all"})
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Survey", snap.Items[0].Field("title"))

	snap = h.View(domain.SectionDeliverables, map[string]string{"phase": "Research", "status": "Completed"})
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Interviews", snap.Items[0].Field("title"))

	assert.Len(t, h.Snapshot(domain.SectionDeliverables).Items, 3, "filtering leaves the cache intact")
}

func TestDialog_AddThroughHub(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	h := newHub(t, fake)
	loginAdmin(t, h)
	ctx := context.Background()

	var saved []domain.Record
	d := h.NewDialog(ctx, domain.SectionProcesses, func(rec domain.Record) { saved = append(saved, rec) })
	require.NoError(t, d.OpenAdd())
	require.NoError(t, d.Set("name", "Invoice approval"))
	require.NoError(t, d.Set("department", "Finance"))
	require.NoError(t, d.Set("priority_score", "8"))

	rec, err := d.Submit(ctx)
	require.NoError(t, err)
	assert.NotZero(t, rec.RecordID())
	assert.Equal(t, dialog.Closed, d.View().State)
	require.Len(t, saved, 1)
	assert.Equal(t, 1, fake.Count(domain.SectionProcesses))

	got, ok := h.Get(domain.SectionProcesses, rec.RecordID())
	require.True(t, ok)
	assert.Equal(t, "8", got.Field("priority_score"))
}

func TestDialog_ProcessChoicesFollowOptionSets(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	h := newHub(t, fake)
	ctx := context.Background()

	_, err := h.Options.Add(ctx, domain.CategoryDepartments, "Legal")
	require.NoError(t, err)

	field, ok := h.NewDialog(ctx, domain.SectionProcesses, nil).Form().Field("department")
	require.True(t, ok)
	assert.Contains(t, field.Options, "Legal")
}

func TestOpenEdit_RequiresCachedRecord(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	fake.Seed(t, domain.SectionIntegrations, testutil.NewTestIntegration("Ledger sync", "QuickBooks", "Active"))
	h := newHub(t, fake)
	loginAdmin(t, h)
	ctx := context.Background()

	_, err := h.OpenEdit(ctx, domain.SectionIntegrations, 1, nil)
	assert.ErrorIs(t, err, ErrRecordNotCached)

	require.NoError(t, h.List(ctx, domain.SectionIntegrations))
	d, err := h.OpenEdit(ctx, domain.SectionIntegrations, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ledger sync", d.View().Draft["name"])

	require.NoError(t, d.Set("status", "Error"))
	_, err = d.Submit(ctx)
	require.NoError(t, err)

	got, ok := h.Get(domain.SectionIntegrations, 1)
	require.True(t, ok)
	assert.Equal(t, "Error", got.Field("status"))
}

func TestRemove_DispatchesToSectionStore(t *testing.T) {
	fake := testutil.NewFakeHub(t)
	fake.Seed(t, domain.SectionSoftwareTools,
		testutil.NewTestTool("Notion", domain.ToolCore),
		testutil.NewTestTool("Zapier", domain.ToolIntegration),
	)
	h := newHub(t, fake)
	loginAdmin(t, h)
	ctx := context.Background()
	require.NoError(t, h.List(ctx, domain.SectionSoftwareTools))

	removed, err := h.Remove(ctx, domain.SectionSoftwareTools, 2, store.Confirmed)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, fake.Count(domain.SectionSoftwareTools))
	assert.Len(t, h.Snapshot(domain.SectionSoftwareTools).Items, 1)
}

func TestOps_UnknownSectionPanics(t *testing.T) {
	h := newHub(t, testutil.NewFakeHub(t))
	assert.Panics(t, func() { h.Snapshot(domain.Section("gallery")) })
}
