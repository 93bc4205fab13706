package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
)

// File is one attachment in a multipart upload.
type File struct {
	Name    string
	Content io.Reader
}

// Upload posts files plus form fields as multipart/form-data. Fields are
// encoded the way the backend's multipart parser expects real structures:
// slices become repeated keys, maps become key[sub] pairs, structured
// slice elements are JSON-encoded, and nil values are skipped.
func (c *Client) Upload(ctx context.Context, path string, files []File, fields map[string]any) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}

	// Deterministic field order keeps multipart bodies reproducible.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if c.sanitizer.Denied(name) {
			continue
		}
		if err := writeFormValue(w, name, c.sanitizer.Clean(normalize(fields[name]))); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
}

// normalize converts an arbitrary Go value into generic JSON types so the
// sanitizer and field writer see one shape.
func normalize(v any) any {
	switch v.(type) {
	case nil, string, bool, int, int64, float32, float64, map[string]any, []any:
		return v
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func writeFormValue(w *multipart.Writer, key string, value any) error {
	switch val := value.(type) {
	case nil:
		return nil
	case []any:
		// Repeated keys (tags=safety, tags=event) so backends get real arrays.
		for _, item := range val {
			switch item := item.(type) {
			case nil:
				continue
			case map[string]any, []any:
				raw, err := json.Marshal(item)
				if err != nil {
					return err
				}
				if err := w.WriteField(key, string(raw)); err != nil {
					return err
				}
			default:
				if err := w.WriteField(key, fmt.Sprint(item)); err != nil {
					return err
				}
			}
		}
		return nil
	case map[string]any:
		subs := make([]string, 0, len(val))
		for sub := range val {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		for _, sub := range subs {
			if val[sub] == nil {
				continue
			}
			if err := writeFormValue(w, fmt.Sprintf("%s[%s]", key, sub), val[sub]); err != nil {
				return err
			}
		}
		return nil
	default:
		return w.WriteField(key, fmt.Sprint(val))
	}
}
