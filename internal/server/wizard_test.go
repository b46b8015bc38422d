package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-roadmap/internal/server"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/store"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	csrf   string
}

func newBrowser(t *testing.T, srv *server.Server) *browser {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &browser{t: t, base: ts.URL, client: &http.Client{Jar: jar}}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	if err != nil {
		b.t.Fatalf("GET %s: %v", path, err)
	}
	return b.read(resp)
}

func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get(server.CSRFField) == "" {
		form.Set(server.CSRFField, b.csrf)
	}
	resp, err := b.client.PostForm(b.base+path, form)
	if err != nil {
		b.t.Fatalf("POST %s: %v", path, err)
	}
	return b.read(resp)
}

func (b *browser) read(resp *http.Response) (int, string) {
	b.t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	body := string(raw)
	if match := csrfPattern.FindStringSubmatch(body); match != nil {
		b.csrf = match[1]
	}
	return resp.StatusCode, body
}

func expectContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected page to contain %q\n%s", fragment, body)
		}
	}
}

func stepOneForm() url.Values {
	input := testsupport.ValidInput()
	return url.Values{
		model.FieldCurrentRole:   {input.CurrentRole},
		model.FieldCurrentSkills: {input.CurrentSkills},
	}
}

func stepTwoForm() url.Values {
	input := testsupport.ValidInput()
	return url.Values{
		model.FieldDreamJob:   {input.DreamJob},
		model.FieldExperience: {string(input.Experience)},
	}
}

func stepThreeForm() url.Values {
	input := testsupport.ValidInput()
	return url.Values{
		model.FieldTimeline:       {string(input.Timeline)},
		model.FieldAdditionalInfo: {input.AdditionalInfo},
	}
}

func TestWizardFlow_SubmitSaveAndReset(t *testing.T) {
	history, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "roadmaps.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })

	gen := &testsupport.StubGenerator{Result: testsupport.SampleRoadmap()}
	b := newBrowser(t, newServer(t, gen, server.WithHistory(history)))

	status, body := b.get(server.WizardPath)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	expectContains(t, body, "Step 1 of 3", "33% Complete")

	_, body = b.post(server.NextPath, stepOneForm())
	expectContains(t, body, "Step 2 of 3", "67% Complete", "Previous")

	_, body = b.post(server.NextPath, stepTwoForm())
	expectContains(t, body, "Step 3 of 3", "100% Complete", "Generate My Roadmap")

	_, body = b.post(server.SubmitPath, stepThreeForm())
	expectContains(t, body,
		"Career Roadmap: Junior Developer → Senior Full-Stack Developer",
		"Phase 1: Backend Basics",
		"Save to Dashboard",
		"Create Another Roadmap")

	calls := gen.Calls()
	if len(calls) != 1 || calls[0] != testsupport.ValidInput() {
		t.Fatalf("unexpected generator calls %+v", calls)
	}

	_, body = b.post(server.SavePath, nil)
	expectContains(t, body, "Saved to Dashboard")
	if strings.Contains(body, "<button type=\"submit\">Save to Dashboard</button>") {
		t.Fatalf("expected save button to be hidden after saving")
	}

	records, err := history.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Input != testsupport.ValidInput() {
		t.Fatalf("unexpected saved records %+v", records)
	}

	_, body = b.get(server.HistoryPath)
	expectContains(t, body, `id="roadmap-`+records[0].ID+`"`, records[0].Roadmap.Title)

	status, body = b.get(server.HistoryPath + "/" + records[0].ID)
	if status != http.StatusOK {
		t.Fatalf("expected saved roadmap page, got %d", status)
	}
	expectContains(t, body, "Phase 2: Deployment")

	_, body = b.post(server.ResetPath, nil)
	expectContains(t, body, "Step 1 of 3")
	if strings.Contains(body, `value="Junior Developer"`) {
		t.Fatalf("expected reset to clear the collected input")
	}
}

func TestWizard_ValidationKeepsStep(t *testing.T) {
	b := newBrowser(t, newServer(t, &testsupport.StubGenerator{}))
	b.get(server.WizardPath)

	_, body := b.post(server.NextPath, url.Values{
		model.FieldCurrentRole:   {"J"},
		model.FieldCurrentSkills: {"HTML, CSS"},
	})
	expectContains(t, body, "Step 1 of 3", "Current role must be at least 2 characters", ">HTML, CSS</textarea>")
}

func TestWizard_PreviousKeepsValues(t *testing.T) {
	b := newBrowser(t, newServer(t, &testsupport.StubGenerator{}))
	b.get(server.WizardPath)
	b.post(server.NextPath, stepOneForm())

	_, body := b.post(server.PreviousPath, url.Values{model.FieldDreamJob: {"Architect"}})
	expectContains(t, body, "Step 1 of 3", `value="Junior Developer"`)

	_, body = b.post(server.NextPath, stepOneForm())
	expectContains(t, body, "Step 2 of 3", `value="Architect"`)
}

func TestWizard_FallbackNotice(t *testing.T) {
	b := newBrowser(t, newServer(t, testsupport.FailingGenerator()))
	b.get(server.WizardPath)
	b.post(server.NextPath, stepOneForm())
	b.post(server.NextPath, stepTwoForm())

	_, body := b.post(server.SubmitPath, stepThreeForm())
	fallback := wizard.FallbackRoadmap(testsupport.ValidInput())
	expectContains(t, body, "We could not reach the roadmap service", fallback.Title)
}

func TestWizard_SubmissionFailureWithoutFallback(t *testing.T) {
	b := newBrowser(t, newServer(t, testsupport.FailingGenerator(), server.WithFallbackPolicy(wizard.FallbackDisabled)))
	b.get(server.WizardPath)
	b.post(server.NextPath, stepOneForm())
	b.post(server.NextPath, stepTwoForm())

	_, body := b.post(server.SubmitPath, stepThreeForm())
	expectContains(t, body, "Could not generate your roadmap", "Step 3 of 3")
}

func TestWizard_RejectsMissingCSRFToken(t *testing.T) {
	b := newBrowser(t, newServer(t, &testsupport.StubGenerator{}))
	b.get(server.WizardPath)

	form := stepOneForm()
	form.Set(server.CSRFField, "forged")
	_, body := b.post(server.NextPath, form)
	expectContains(t, body, "Step 1 of 3", "Your session expired")
	if strings.Contains(body, `value="Junior Developer"`) {
		t.Fatalf("expected forged post to be ignored")
	}
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	srv := newServer(t, &testsupport.StubGenerator{})
	if rec := serve(srv, http.MethodGet, server.HistoryPath, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without history, got %d", rec.Code)
	}
}

func TestWizard_SubmitOutlivesDisconnectedBrowser(t *testing.T) {
	generated := testsupport.SampleRoadmap()
	generated.Title = "Career Roadmap: Generated After Disconnect"

	done := make(chan struct{})
	gen := wizard.GeneratorFunc(func(ctx context.Context, _ model.FormInput) (model.Roadmap, error) {
		defer close(done)
		select {
		case <-time.After(300 * time.Millisecond):
			return generated.Clone(), nil
		case <-ctx.Done():
			return model.Roadmap{}, ctx.Err()
		}
	})
	b := newBrowser(t, newServer(t, &testsupport.StubGenerator{}, server.WithWizardGenerator(gen)))
	b.get(server.WizardPath)
	b.post(server.NextPath, stepOneForm())
	b.post(server.NextPath, stepTwoForm())

	form := stepThreeForm()
	form.Set(server.CSRFField, b.csrf)
	impatient := &http.Client{Jar: b.client.Jar, Timeout: 50 * time.Millisecond}
	if resp, err := impatient.PostForm(b.base+server.SubmitPath, form); err == nil {
		resp.Body.Close()
		t.Fatalf("expected the browser request to time out")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("generator did not finish")
	}

	var body string
	for deadline := time.Now().Add(2 * time.Second); time.Now().Before(deadline); time.Sleep(20 * time.Millisecond) {
		_, body = b.get(server.WizardPath)
		if strings.Contains(body, generated.Title) {
			break
		}
	}
	expectContains(t, body, generated.Title)
	if strings.Contains(body, wizard.FallbackRoadmap(testsupport.ValidInput()).Title) {
		t.Fatalf("expected the generated roadmap, not the fallback")
	}
}
