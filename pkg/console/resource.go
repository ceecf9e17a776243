package console

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"go-hr/pkg/listing"
)

// EncodeQuery turns controller state into list-endpoint query parameters.
// Set-valued filters become repeated parameters.
func EncodeQuery(q listing.Query) url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for field, v := range q.Filters {
		switch vv := v.(type) {
		case []string:
			for _, item := range vv {
				values.Add(field, item)
			}
		case bool:
			values.Set(field, strconv.FormatBool(vv))
		default:
			values.Set(field, fmt.Sprintf("%v", vv))
		}
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
		values.Set("sort_order", string(q.SortOrder))
	}
	return values
}

// Resource builds a listing.Resource for one backend path, e.g.
// "/api/members". Rows travel as raw JSON objects; the key function pulls
// the record's key field(s) for update and delete URLs.
func Resource(c *Client, path string, key func(row map[string]any) string) listing.Resource[map[string]any] {
	return listing.Resource[map[string]any]{
		Fetch: func(ctx context.Context, q listing.Query) (*listing.Result[map[string]any], error) {
			var result listing.Result[map[string]any]
			target := path
			if encoded := EncodeQuery(q).Encode(); encoded != "" {
				target += "?" + encoded
			}
			if err := c.Get(ctx, target, &result); err != nil {
				return nil, err
			}
			return &result, nil
		},
		Create: func(ctx context.Context, data map[string]any) error {
			return c.Post(ctx, path, data, nil)
		},
		Update: func(ctx context.Context, key string, data map[string]any) error {
			return c.Put(ctx, path+"/"+key, data, nil)
		},
		Delete: func(ctx context.Context, key string) error {
			return c.Delete(ctx, path+"/"+key, nil)
		},
		Key: key,
	}
}

// Export downloads the current result set in the given format, applying
// the same query parameters without pagination.
func (c *Client) Export(ctx context.Context, path string, q listing.Query, format string) ([]byte, string, error) {
	values := EncodeQuery(q)
	values.Del("page")
	values.Del("page_size")
	values.Set("format", format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"/export?"+values.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("export returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	_, params, _ := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	return data, params["filename"], nil
}
