// Package client talks to the REST API of a running daemon.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pinky3d/pinkyd/internal/api"
	"github.com/pinky3d/pinkyd/internal/control"
	"github.com/pinky3d/pinkyd/internal/devices"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseUrl string
	http    *http.Client
}

func New(baseUrl string) *Client {
	return &Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ResponseError is returned for any non 2xx answer of the daemon
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("daemon responded with %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Status() (control.Status, error) {
	var result control.Status
	err := c.do(http.MethodGet, "/status/", nil, &result)
	return result, err
}

func (c *Client) PowerOn() (devices.RelayStatus, error) {
	return c.relay(devices.IdPower, "on")
}

func (c *Client) PowerOff() (devices.RelayStatus, error) {
	return c.relay(devices.IdPower, "off")
}

func (c *Client) LightOn() (devices.RelayStatus, error) {
	return c.relay(devices.IdLight, "on")
}

func (c *Client) LightOff() (devices.RelayStatus, error) {
	return c.relay(devices.IdLight, "off")
}

// FanStart starts the fan, speed is only applied when it is not nil
func (c *Client) FanStart(speed *int) (devices.FanStatus, error) {
	var form url.Values
	if speed != nil {
		form = url.Values{"speed": {fmt.Sprint(*speed)}}
	}
	var result devices.FanStatus
	err := c.do(http.MethodPost, "/fan/start/", form, &result)
	return result, err
}

func (c *Client) FanStop() (devices.FanStatus, error) {
	var result devices.FanStatus
	err := c.do(http.MethodPost, "/fan/stop/", nil, &result)
	return result, err
}

// FanSpeed sends the raw value, validation is left to the daemon
func (c *Client) FanSpeed(value string) (devices.FanStatus, error) {
	var result devices.FanStatus
	err := c.do(http.MethodPost, "/fan/update/", url.Values{"speed": {value}}, &result)
	return result, err
}

func (c *Client) relay(id string, action string) (devices.RelayStatus, error) {
	var result devices.RelayStatus
	err := c.do(http.MethodPost, fmt.Sprintf("/%s/%s/", id, action), nil, &result)
	return result, err
}

func (c *Client) do(method string, path string, form url.Values, result any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.baseUrl+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach daemon at %s: %w", c.baseUrl, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiResult api.Result
		if err := json.Unmarshal(data, &apiResult); err == nil && len(apiResult.Message) > 0 {
			return &ResponseError{StatusCode: resp.StatusCode, Message: apiResult.Message}
		}
		return &ResponseError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return json.Unmarshal(data, result)
}
