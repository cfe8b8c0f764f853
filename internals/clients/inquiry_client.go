package clients

import (
	"context"
	"net/http"
)

// InquiryClient fetches inquiry records owned by the Inquiry service.
type InquiryClient interface {
	GetInquiryByID(ctx context.Context, inquiryID int64) (*Inquiry, error)
}

type inquiryClient struct {
	baseURL string
	hc      *http.Client
}

func NewInquiryClient(baseURL string) InquiryClient {
	return &inquiryClient{baseURL: baseURL, hc: newHTTPClient()}
}

func (c *inquiryClient) GetInquiryByID(ctx context.Context, inquiryID int64) (*Inquiry, error) {
	var inquiry Inquiry
	ok, err := getJSON(ctx, c.hc, joinURL(c.baseURL, "/api/inquiries/without-token/%d", inquiryID), &inquiry)
	if err != nil || !ok {
		return nil, err
	}
	return &inquiry, nil
}
