package toast

import (
	"strings"
	"testing"
	"time"

	"slate/internal/types"
	"slate/internal/ui/styles"
)

func TestRenderEmpty(t *testing.T) {
	r := New(styles.New())
	if out := r.Render(nil, 100); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderStacksMessages(t *testing.T) {
	r := New(styles.New())
	toasts := []types.Toast{
		{Level: types.ToastError, Message: "move failed", Expires: time.Now().Add(time.Second)},
		{Level: types.ToastSuccess, Message: "3 tasks moved", Expires: time.Now().Add(time.Second)},
	}

	out := r.Render(toasts, 120)
	if !strings.Contains(out, "move failed") || !strings.Contains(out, "3 tasks moved") {
		t.Errorf("missing toast messages in output: %q", out)
	}
}
