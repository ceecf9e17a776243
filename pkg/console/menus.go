package console

import (
	"context"
	"net/http"

	"go-hr/pkg/menutree"
)

// MenuAPI is the backend surface the menu editor's apply step replays
// against. It satisfies menutree.Applier.
type MenuAPI struct {
	client *Client
}

func NewMenuAPI(client *Client) *MenuAPI {
	return &MenuAPI{client: client}
}

func (m *MenuAPI) CreateNode(ctx context.Context, n menutree.Node) (string, error) {
	var resp struct {
		Message string `json:"message"`
		MenuID  string `json:"menu_id"`
	}
	if err := m.client.Post(ctx, "/api/system/menus", n, &resp); err != nil {
		return "", err
	}
	return resp.MenuID, nil
}

func (m *MenuAPI) UpdateNode(ctx context.Context, id string, n menutree.Node) error {
	return m.client.Put(ctx, "/api/system/menus/"+id, n, nil)
}

func (m *MenuAPI) DeleteNode(ctx context.Context, id string) error {
	return m.client.Delete(ctx, "/api/system/menus/"+id, nil)
}

// FetchAll pulls the flat canonical list used to (re)stage the editor.
func (m *MenuAPI) FetchAll(ctx context.Context) ([]menutree.Node, error) {
	var resp struct {
		Items []menutree.Node `json:"items"`
	}
	if err := m.client.Do(ctx, http.MethodGet, "/api/system/menus/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
