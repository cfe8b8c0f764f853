package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	helper "voc_backend/internals/helpers"
)

// jsonResult is the envelope every peer service answers with.
type jsonResult struct {
	Result  string          `json:"result"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON performs a GET and decodes the envelope's data into out.
// A "fail" result with empty data is reported as (false, nil) so callers can
// map absence to their own error code.
func getJSON(ctx context.Context, hc *http.Client, url string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := hc.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Warn("remote call failed")
		return false, helper.ErrExternalServer
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 500 {
		return false, helper.ErrExternalServer
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, helper.ErrExternalServer
	}

	var envelope jsonResult
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		// plain payloads (e.g. bare booleans/longs) are decoded directly
		if err := sonic.Unmarshal(body, out); err != nil {
			return false, helper.ErrExternalServer
		}
		return true, nil
	}

	if envelope.Result == "fail" || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return false, nil
	}
	if out != nil {
		if err := sonic.Unmarshal(envelope.Data, out); err != nil {
			return false, helper.ErrExternalServer
		}
	}
	return true, nil
}

func joinURL(base, pathFmt string, args ...interface{}) string {
	return base + fmt.Sprintf(pathFmt, args...)
}
