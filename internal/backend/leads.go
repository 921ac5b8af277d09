package backend

import (
	"context"
	"fmt"
	"net/http"
)

const customDesignPath = "/api/custom-requests/custom-design"

// ListInquiries fetches all plan inquiries.
func (c *Client) ListInquiries(ctx context.Context, token string) ([]Inquiry, error) {
	body, err := c.do(ctx, call{
		op:     "list_inquiries",
		method: http.MethodGet,
		path:   "/api/inquiries",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	out, err := decodeList[Inquiry](body, "inquiries")
	if err != nil {
		return nil, fmt.Errorf("list_inquiries: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateInquiryStatus(ctx context.Context, token, id, status string) error {
	_, err := c.doJSON(ctx, call{
		op:     "update_inquiry_status",
		method: http.MethodPatch,
		path:   "/api/inquiries/" + escapeID(id),
		token:  token,
	}, map[string]string{"status": status})
	return err
}

func (c *Client) DeleteInquiry(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{
		op:     "delete_inquiry",
		method: http.MethodDelete,
		path:   "/api/inquiries/" + escapeID(id),
		token:  token,
	})
	return err
}

// ListCustomRequests fetches all custom-design requests.
func (c *Client) ListCustomRequests(ctx context.Context, token string) ([]CustomRequest, error) {
	body, err := c.do(ctx, call{
		op:     "list_custom_requests",
		method: http.MethodGet,
		path:   customDesignPath,
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	out, err := decodeList[CustomRequest](body, "requests", "customRequests")
	if err != nil {
		return nil, fmt.Errorf("list_custom_requests: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateCustomRequestStatus(ctx context.Context, token, id, status string) error {
	_, err := c.doJSON(ctx, call{
		op:     "update_custom_request_status",
		method: http.MethodPatch,
		path:   customDesignPath + "/" + escapeID(id),
		token:  token,
	}, map[string]string{"status": status})
	return err
}

func (c *Client) DeleteCustomRequest(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{
		op:     "delete_custom_request",
		method: http.MethodDelete,
		path:   customDesignPath + "/" + escapeID(id),
		token:  token,
	})
	return err
}
