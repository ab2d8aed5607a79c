package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type EchoError struct {
	Message string `json:"message"`
}

type APIError struct {
	Error string `json:"error"`
}

var client = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
		MaxIdleConnsPerHost: 100,
	},
}

// DoRequest performs a JSON request and decodes the response into v. The
// response status code is always returned, also on error, so callers can map
// 4xx responses.
func DoRequest(ctx context.Context, method, url string, headers map[string]string, payload []byte, v interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	for k, h := range headers {
		req.Header.Add(k, h)
	}
	res, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		d, err := io.ReadAll(res.Body)
		if err != nil {
			return res.StatusCode, fmt.Errorf("read body: %w", err)
		}

		var apierr APIError
		if jserr := json.Unmarshal(d, &apierr); jserr == nil && apierr.Error != "" {
			return res.StatusCode, fmt.Errorf(apierr.Error)
		}
		var echoerr EchoError
		if jserr := json.Unmarshal(d, &echoerr); jserr == nil && echoerr.Message != "" {
			return res.StatusCode, fmt.Errorf(echoerr.Message)
		}

		return res.StatusCode, fmt.Errorf("http status: %d: %s", res.StatusCode, d)
	}
	if v == nil {
		return res.StatusCode, nil
	}
	return res.StatusCode, json.NewDecoder(res.Body).Decode(v)
}
