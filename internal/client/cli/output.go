package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// printJSON pretty-prints a raw backend reply.
func (a *App) printJSON(raw json.RawMessage) {
	if len(bytes.TrimSpace(raw)) == 0 {
		a.println("(empty)")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		a.println(string(raw))
		return
	}
	a.println(buf.String())
}

func (a *App) printMessage(msg *models.Message, def string) {
	if msg == nil {
		a.println(def)
		return
	}
	a.println(orDefault(msg.Msg, def))
}

// saveFile writes a downloaded file to path and reports where it went.
func (a *App) saveFile(ctx context.Context, what string, f *models.File, path string) error {
	written, err := f.WriteTo(path)
	if err != nil {
		return a.fail(ctx, what, err)
	}
	a.printf("saved %d bytes to %s\n", len(f.Data), written)
	return nil
}

// countItems counts the rows of a list reply. Both plain arrays and
// paginated objects ({"items": [...], "total": n}) are understood.
func countItems(raw json.RawMessage) (int, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return len(list), true
	}
	var page struct {
		Items []json.RawMessage `json:"items"`
		Total *int              `json:"total"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return 0, false
	}
	if page.Total != nil {
		return *page.Total, true
	}
	if page.Items != nil {
		return len(page.Items), true
	}
	return 0, false
}

// parseID parses a positive numeric id argument.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// parseIDList parses a comma separated list of positive ids, e.g. "1,3,4".
func parseIDList(s string) ([]int64, bool) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, ok := parseID(strings.TrimSpace(p))
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
