package cli

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/evcraddock/house-market/internal/preference"
)

// prefBackend is a fake preferences API holding preference 8.
type prefBackend struct {
	mu      sync.Mutex
	pref    map[string]interface{}
	puts    []preference.Draft
	posts   []preference.Draft
	patches []string
	calls   int
}

func newPrefBackend() *prefBackend {
	return &prefBackend{pref: map[string]interface{}{
		"id":              8,
		"usuarioId":       3,
		"region":          "Lima",
		"modoBusqueda":    "UBICACION",
		"tipoTransaccion": "VENTA",
		"activo":          true,
	}}
}

func (b *prefBackend) handle(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.calls++

		const base = "/api/preferencias-notificacion"
		switch {
		case r.Method == http.MethodGet && r.URL.Path == base+"/8":
			writeJSON(t, w, http.StatusOK, b.pref)
		case r.Method == http.MethodGet && r.URL.Path == base+"/usuario/3":
			writeJSON(t, w, http.StatusOK, []interface{}{b.pref})
		case r.Method == http.MethodPut && r.URL.Path == base+"/8":
			var d preference.Draft
			if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
				t.Errorf("decoding body: %v", err)
			}
			b.puts = append(b.puts, d)
			writeJSON(t, w, http.StatusOK, b.pref)
		case r.Method == http.MethodPost && r.URL.Path == base:
			var d preference.Draft
			if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
				t.Errorf("decoding body: %v", err)
			}
			b.posts = append(b.posts, d)
			writeJSON(t, w, http.StatusCreated, map[string]interface{}{"id": 21, "usuarioId": d.UserID, "modoBusqueda": d.SearchMode, "tipoTransaccion": d.TransactionType, "activo": d.Active})
		case r.Method == http.MethodPatch && r.URL.Path == base+"/8/activo":
			v := r.URL.Query().Get("valor")
			b.patches = append(b.patches, v)
			b.pref["activo"] = v == "true"
			writeJSON(t, w, http.StatusOK, b.pref)
		case r.Method == http.MethodDelete && r.URL.Path == base+"/8":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		}
	}
}

func TestPrefEditDraftSubmit(t *testing.T) {
	b := newPrefBackend()
	setupBackend(t, b.handle(t))
	dbPath := testDBPath(t)

	out, err := executeCommand("pref", "edit", "8", "--district", "Miraflores", "--type", "rental", "--db", dbPath)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "Draft saved for preference #8") {
		t.Errorf("edit output = %q", out)
	}
	if len(b.puts) != 0 {
		t.Fatal("edit must not send anything")
	}

	out, err = executeCommand("pref", "draft", "8", "--db", dbPath)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	for _, want := range []string{"district: - -> Miraflores", "transaction_type: VENTA -> ALQUILER"} {
		if !strings.Contains(out, want) {
			t.Errorf("draft output missing %q:\n%s", want, out)
		}
	}

	// A second edit builds on the staged draft.
	if _, err := executeCommand("pref", "edit", "8", "--region", "", "--db", dbPath); err != nil {
		t.Fatalf("second edit: %v", err)
	}

	if _, err := executeCommand("pref", "submit", "8", "--db", dbPath); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(b.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(b.puts))
	}
	got := b.puts[0]
	if got.Region != nil || got.District == nil || *got.District != "Miraflores" || got.TransactionType != preference.TypeRental {
		t.Errorf("submitted draft = %+v", got)
	}

	if _, err := executeCommand("pref", "draft", "8", "--db", dbPath); err == nil {
		t.Error("draft should be cleared after submit")
	}
}

func TestPrefSubmitInvalidDraftSendsNothing(t *testing.T) {
	b := newPrefBackend()
	setupBackend(t, b.handle(t))
	dbPath := testDBPath(t)

	// Proximity without a radius fails the cross-field rules.
	if _, err := executeCommand("pref", "edit", "8", "--mode", "proximity", "--db", dbPath); err != nil {
		t.Fatalf("edit: %v", err)
	}
	_, err := executeCommand("pref", "submit", "8", "--db", dbPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(b.puts) != 0 {
		t.Errorf("puts = %d, want 0", len(b.puts))
	}
}

func TestPrefNewDraftCreates(t *testing.T) {
	b := newPrefBackend()
	setupBackend(t, b.handle(t))
	dbPath := testDBPath(t)

	args := []string{"pref", "edit", "new", "--mode", "both", "--district", "Barranco",
		"--radius", "3", "--lat", "-12.14", "--lng", "-77.02", "--type", "sale", "--db", dbPath}
	if _, err := executeCommand(args...); err != nil {
		t.Fatalf("edit new: %v", err)
	}
	if b.calls != 0 {
		t.Errorf("calls = %d, a new draft needs no lookup", b.calls)
	}

	out, err := executeCommand("pref", "submit", "new", "--db", dbPath)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(b.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(b.posts))
	}
	d := b.posts[0]
	if d.UserID != 3 || d.SearchMode != preference.ModeBoth || !d.Active || d.RadiusKm == nil || *d.RadiusKm != 3 {
		t.Errorf("created draft = %+v", d)
	}
	if !strings.Contains(out, "Preference #21 saved") {
		t.Errorf("output = %q", out)
	}
}

func TestPrefDiscard(t *testing.T) {
	setupBackend(t, newPrefBackend().handle(t))
	dbPath := testDBPath(t)

	if _, err := executeCommand("pref", "edit", "new", "--mode", "location", "--db", dbPath); err != nil {
		t.Fatalf("edit: %v", err)
	}
	out, err := executeCommand("pref", "discard", "new", "--db", dbPath)
	if err != nil || !strings.Contains(out, "discarded") {
		t.Fatalf("discard = %q, %v", out, err)
	}
	out, err = executeCommand("pref", "discard", "new", "--db", dbPath)
	if err != nil || !strings.Contains(out, "No draft") {
		t.Errorf("second discard = %q, %v", out, err)
	}
}

func TestPrefToggle(t *testing.T) {
	b := newPrefBackend()
	setupBackend(t, b.handle(t))

	out, err := executeCommand("pref", "toggle", "8")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(b.patches) != 1 || b.patches[0] != "false" {
		t.Errorf("patches = %v, want [false]", b.patches)
	}
	if !strings.Contains(out, "are off") {
		t.Errorf("output = %q", out)
	}

	if _, err := executeCommand("pref", "toggle", "8", "--on"); err != nil {
		t.Fatalf("toggle --on: %v", err)
	}
	if b.patches[1] != "true" {
		t.Errorf("patches = %v", b.patches)
	}

	if _, err := executeCommand("pref", "toggle", "8", "--on", "--off"); err == nil {
		t.Error("expected error for --on with --off")
	}
}

func TestPrefCreateValidates(t *testing.T) {
	b := newPrefBackend()
	setupBackend(t, b.handle(t))

	if _, err := executeCommand("pref", "create", "--mode", "location", "--type", "sale"); err == nil {
		t.Fatal("expected error: location mode needs a region or district")
	}
	if _, err := executeCommand("pref", "create", "--mode", "sideways"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if len(b.posts) != 0 {
		t.Errorf("posts = %d, want 0", len(b.posts))
	}

	if _, err := executeCommand("pref", "create", "--mode", "location", "--region", "Lima", "--type", "sale"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(b.posts) != 1 {
		t.Errorf("posts = %d, want 1", len(b.posts))
	}
}

func TestPrefList(t *testing.T) {
	setupBackend(t, newPrefBackend().handle(t))

	out, err := executeCommand("pref", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Lima") {
		t.Errorf("output:\n%s", out)
	}
}

func TestPrefDraftListShowsOwner(t *testing.T) {
	setupBackend(t, newPrefBackend().handle(t))
	dbPath := testDBPath(t)

	if _, err := executeCommand("pref", "edit", "new", "--mode", "location", "--region", "Lima", "--db", dbPath); err != nil {
		t.Fatalf("edit: %v", err)
	}
	out, err := executeCommand("pref", "draft", "--db", dbPath)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if !strings.Contains(out, "USER") || !strings.Contains(out, "new preference  3") {
		t.Errorf("draft list:\n%s", out)
	}
}
