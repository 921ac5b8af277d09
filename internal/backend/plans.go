package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// PlanQuery selects a subset of GET /api/plans.
type PlanQuery struct {
	Featured bool
	Trending bool
	Status   string
}

func (q PlanQuery) values() url.Values {
	v := url.Values{}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Trending {
		v.Set("trending", "true")
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// ListPlans fetches plans. token may be empty for the public listing; an
// admin token returns drafts and archived plans too.
func (c *Client) ListPlans(ctx context.Context, token string, q PlanQuery) ([]Plan, error) {
	body, err := c.do(ctx, call{
		op:     "list_plans",
		method: http.MethodGet,
		path:   "/api/plans",
		query:  q.values(),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	plans, err := decodeList[Plan](body, "plans")
	if err != nil {
		return nil, fmt.Errorf("list_plans: %w", err)
	}
	return plans, nil
}

// UpdatePlanStatus sets the status of a plan.
func (c *Client) UpdatePlanStatus(ctx context.Context, token, id, status string) error {
	_, err := c.doJSON(ctx, call{
		op:     "update_plan_status",
		method: http.MethodPatch,
		path:   "/api/plans/" + escapeID(id),
		token:  token,
	}, map[string]string{"status": status})
	return err
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{
		op:     "delete_plan",
		method: http.MethodDelete,
		path:   "/api/plans/" + escapeID(id),
		token:  token,
	})
	return err
}

// UploadPlan forwards a multipart plan upload. contentType must carry the
// multipart boundary of body.
func (c *Client) UploadPlan(ctx context.Context, token string, body io.Reader, contentType string) (*Plan, error) {
	resp, err := c.do(ctx, call{
		op:          "upload_plan",
		method:      http.MethodPost,
		path:        "/api/plans/upload",
		token:       token,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[Plan]("upload_plan", resp, "plan", "data")
}

// ListCategories fetches the public category listing.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	body, err := c.do(ctx, call{
		op:     "list_categories",
		method: http.MethodGet,
		path:   "/api/categories",
	})
	if err != nil {
		return nil, err
	}
	cats, err := decodeList[Category](body, "categories")
	if err != nil {
		return nil, fmt.Errorf("list_categories: %w", err)
	}
	return cats, nil
}
