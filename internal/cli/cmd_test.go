package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/service"
	"github.com/alexanderramin/capstonehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App against a fake backend and an in-memory DB.
func testApp(t *testing.T) (*App, *testutil.FakeHub) {
	t.Helper()
	fake := testutil.NewFakeHub(t)
	cfg := hubclient.DefaultConfig()
	cfg.BaseURL = fake.URL()
	cfg.TimeoutMs = 2000
	client, err := hubclient.New(cfg)
	require.NoError(t, err)

	renderer, err := render.New()
	require.NoError(t, err)

	return &App{
		Hub: hub.New(hub.Deps{
			Transport: client,
			AuthPath:  cfg.AuthPath,
			Options:   service.NewOptionService(testutil.NewTestUoW(testutil.NewTestDB(t))),
		}),
		Renderer: renderer,
		Now:      func() time.Time { return time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC) },
	}, fake
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestWhoami_DefaultsToViewer(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "VIEWER")
	assert.Contains(t, out, "export")
	assert.NotContains(t, out, "delete")
}

func TestLogin_RequiresPasswordWhenNotInteractive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestLoginLogout(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "login", "--password", testutil.FakeAdminPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "ADMIN")

	out, err = executeCmd(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "VIEWER")
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "--password", "nope")
	require.Error(t, err)
	assert.False(t, app.Hub.Auth.Resolve(context.Background()).IsAdmin())
}

func TestList_CardsWithFilters(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionDeliverables,
		testutil.NewTestDeliverable("Proposal"),
		testutil.NewTestDeliverable("Survey", testutil.WithPhase(domain.PhaseResearch)),
	)

	out, err := executeCmd(t, app, "list", "deliverables", "--phase", "Research")
	require.NoError(t, err)
	assert.Contains(t, out, "Survey")
	assert.NotContains(t, out, "Proposal")
	assert.NotContains(t, out, "edit deliverables", "viewer sees no controls")
}

func TestList_Table(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionIntegrations, testutil.NewTestIntegration("Ledger sync", "QuickBooks", "Active"))

	out, err := executeCmd(t, app, "list", "integrations", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Ledger sync")
}

func TestList_EmptySection(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "list", "deliverables")
	require.NoError(t, err)
	assert.Contains(t, out, "No deliverables yet")
}

func TestList_FailedLoadShowsFailedState(t *testing.T) {
	app, fake := testApp(t)
	fake.Fail(http.MethodGet, domain.SectionResearch.APIPath(), http.StatusInternalServerError)

	out, err := executeCmd(t, app, "list", "research")
	require.Error(t, err)
	assert.Contains(t, out, "Failed to load research")
}

func TestList_UnknownSection(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "list", "gallery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestRender_WritesEscapedHTML(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionProcesses, domain.BusinessProcess{Name: "<b>Billing</b>", Department: "Finance"})

	out, err := executeCmd(t, app, "render", "processes")
	require.NoError(t, err)
	assert.Contains(t, out, `id="processes-grid"`)
	assert.Contains(t, out, "&lt;b&gt;Billing&lt;/b&gt;")
}

func TestAdd_WithSetFlags(t *testing.T) {
	app, fake := testApp(t)
	_, err := executeCmd(t, app, "login", "--password", testutil.FakeAdminPassword)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "add", "processes",
		"--set", "name=Invoice approval",
		"--set", "department=Finance",
		"--set", "priority_score=7",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created business process #1")
	assert.Equal(t, 1, fake.Count(domain.SectionProcesses))
}

func TestAdd_RejectsOutOfRangePriority(t *testing.T) {
	app, fake := testApp(t)
	_, err := executeCmd(t, app, "login", "--password", testutil.FakeAdminPassword)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "add", "processes",
		"--set", "name=Invoice approval",
		"--set", "department=Finance",
		"--set", "priority_score=11",
	)
	require.Error(t, err)
	assert.Contains(t, out, "between 0 and 10")
	assert.Equal(t, 0, fake.Count(domain.SectionProcesses))
}

func TestAdd_UnknownField(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "add", "deliverables", "--set", "colour=red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestAdd_ViewerGetsAdminNotice(t *testing.T) {
	app, fake := testApp(t)

	out, err := executeCmd(t, app, "add", "deliverables", "--set", "title=Report", "--set", "phase=Final")
	require.Error(t, err)
	assert.Contains(t, out, "Admin access required")
	assert.Equal(t, 0, fake.Count(domain.SectionDeliverables))
}

func TestEdit_UpdatesRecord(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionResearch, testutil.NewTestResearch("Survey", domain.ResearchPrimary))
	_, err := executeCmd(t, app, "login", "--password", testutil.FakeAdminPassword)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "edit", "research", "1", "--set", "key_findings=Manual entry dominates")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated research item #1")

	rec, ok := app.Hub.Get(domain.SectionResearch, 1)
	require.True(t, ok)
	assert.Equal(t, "Manual entry dominates", rec.Field("key_findings"))
	assert.Equal(t, "Survey", rec.Field("title"))
}

func TestEdit_MissingRecord(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "edit", "research", "42", "--set", "title=x")
	require.ErrorIs(t, err, hub.ErrRecordNotCached)
}

func TestDelete_NeedsConfirmationWhenNotInteractive(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionResearch, testutil.NewTestResearch("Survey", domain.ResearchPrimary))

	_, err := executeCmd(t, app, "delete", "research", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Empty(t, fake.Requests(http.MethodDelete))
}

func TestDelete_WithYes(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionResearch, testutil.NewTestResearch("Survey", domain.ResearchPrimary))
	_, err := executeCmd(t, app, "login", "--password", testutil.FakeAdminPassword)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "delete", "research", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted research item #1")
	assert.Equal(t, 0, fake.Count(domain.SectionResearch))
	assert.Len(t, fake.Requests(http.MethodDelete), 1)
}

func TestOptions_AddRemoveReset(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "options", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "departments")
	assert.Contains(t, out, "Customer Service")

	out, err = executeCmd(t, app, "options", "add", "dept", "Legal")
	require.NoError(t, err)
	assert.Contains(t, out, "Legal")

	_, err = executeCmd(t, app, "options", "replace", "automation", "Only")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "options", "remove", "automation", "Only")
	require.Error(t, err, "the last option stays")

	out, err = executeCmd(t, app, "options", "reset")
	require.NoError(t, err)
	assert.NotContains(t, out, "Legal")
	assert.Contains(t, out, "automationPotential")
	assert.Contains(t, out, "Medium")
}

func TestDashboard_SummarisesSections(t *testing.T) {
	app, fake := testApp(t)
	fake.Seed(t, domain.SectionDeliverables,
		testutil.NewTestDeliverable("Proposal", testutil.WithStatus(domain.StatusCompleted)),
		testutil.NewTestDeliverable("Final report", testutil.WithPhase(domain.PhaseFinal), testutil.WithDueDate("2026-02-09")),
	)
	fake.Fail(http.MethodGet, domain.SectionIntegrations.APIPath(), http.StatusServiceUnavailable)

	out, err := executeCmd(t, app, "dashboard")
	require.Error(t, err)
	assert.Contains(t, out, "Deliverables")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Foundation & Planning")
	assert.Contains(t, out, "In 2d")
}
