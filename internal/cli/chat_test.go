package cli

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/evcraddock/house-market/internal/chat"
)

func TestChatSend(t *testing.T) {
	var got chat.SendRequest
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/mensajes-chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		writeJSON(t, w, http.StatusCreated, map[string]interface{}{"id": 40, "emisorId": 3, "receptorId": 7, "contenido": got.Content})
	})

	out, err := executeCommand("chat", "send", "7", "Is", "it", "available?", "--property", "12")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.SenderID != 3 || got.ReceiverID != 7 || got.Content != "Is it available?" {
		t.Errorf("request = %+v", got)
	}
	if got.PropertyID == nil || *got.PropertyID != 12 {
		t.Errorf("property = %v, want 12", got.PropertyID)
	}
	if !strings.Contains(out, "Message #40 sent") {
		t.Errorf("output = %q", out)
	}
}

func TestChatSendValidation(t *testing.T) {
	calls := 0
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		name string
		args []string
	}{
		{"to yourself", []string{"chat", "send", "3", "hello"}},
		{"blank text", []string{"chat", "send", "7", "  "}},
		{"bad receiver", []string{"chat", "send", "seven", "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
	if calls != 0 {
		t.Errorf("backend called %d times, want 0", calls)
	}
}

func TestChatConversation(t *testing.T) {
	var query string
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mensajes-chat/conversacion" {
			t.Errorf("path = %s", r.URL.Path)
		}
		query = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, []map[string]interface{}{
			{"id": 1, "emisorId": 7, "receptorId": 3, "contenido": "first", "fechaEnvio": "2024-06-10T10:00:00", "leido": true},
			{"id": 2, "emisorId": 7, "receptorId": 3, "contenido": "second", "fechaEnvio": "2024-06-10T10:05:00", "leido": false},
			{"id": 3, "emisorId": 3, "receptorId": 7, "contenido": "reply", "fechaEnvio": "2024-06-10T10:06:00", "leido": false},
		})
	})

	out, err := executeCommand("chat", "conversation", "7")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if !strings.Contains(query, "usuario1=3") || !strings.Contains(query, "usuario2=7") {
		t.Errorf("query = %q", query)
	}
	for _, want := range []string{"first", "second", "reply"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out, err = executeCommand("chat", "conversation", "7", "--unread")
	if err != nil {
		t.Fatalf("conversation --unread: %v", err)
	}
	if strings.Contains(out, "first") || strings.Contains(out, "reply") || !strings.Contains(out, "second") {
		t.Errorf("unread output:\n%s", out)
	}
}

func TestChatConversationBetweenOthers(t *testing.T) {
	var query string
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, []interface{}{})
	})

	out, err := executeCommand("chat", "conversation", "5", "9")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if !strings.Contains(query, "usuario1=5") || !strings.Contains(query, "usuario2=9") {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(out, "No messages.") {
		t.Errorf("output = %q", out)
	}
}

func TestChatRead(t *testing.T) {
	var method, path string
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"id": 2, "leido": true})
	})

	out, err := executeCommand("chat", "read", "2")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if method != http.MethodPatch || path != "/api/mensajes-chat/2/leido" {
		t.Errorf("request = %s %s", method, path)
	}
	if !strings.Contains(out, "marked as read") {
		t.Errorf("output = %q", out)
	}
}
