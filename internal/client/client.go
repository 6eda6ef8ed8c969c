// Package client is a Go consumer of the MiniTwit API: the same surface the
// web UI uses. Paging is growing-limit: page n asks the server for
// pageSize*n rows from the top, so each page repeats the previous one as a
// prefix. Cheap to implement on an offset-free API and good enough for
// infinite-scroll style clients.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
)

// PerPage is how many new rows one page step reveals.
const PerPage = 30

type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	pageSize int
}

// Message is one timeline row as the API serves it.
type Message struct {
	Content string `json:"content"`
	PubDate string `json:"pub_date"`
	User    string `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Jar: jar},
		pageSize: PerPage,
	}, nil
}

func (c *Client) postJSON(path string, body interface{}) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

func (c *Client) getJSON(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(username, email, password, password2 string) error {
	resp, err := c.postJSON("/register", map[string]string{
		"username": username,
		"email":    email,
		"pwd":      password,
		"pwd2":     password2,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return nil
}

// Login authenticates and keeps both the session cookie and the bearer
// token for later calls.
func (c *Client) Login(username, password string) error {
	resp, err := c.postJSON("/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return err
	}
	c.token = lr.Token
	return nil
}

func (c *Client) Logout() error {
	c.token = ""
	resp, err := c.http.Get(c.baseURL + "/logout")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// PublicTimeline fetches page n (1-based) of the global feed.
func (c *Client) PublicTimeline(page int) ([]Message, error) {
	var msgs []Message
	err := c.getJSON(fmt.Sprintf("/msgs?no=%d", c.limitFor(page)), &msgs)
	return msgs, err
}

// HomeTimeline fetches the logged-in user's personal feed.
func (c *Client) HomeTimeline(page int) ([]Message, error) {
	var msgs []Message
	err := c.getJSON(fmt.Sprintf("/?no=%d", c.limitFor(page)), &msgs)
	return msgs, err
}

// UserTimeline fetches one user's own messages.
func (c *Client) UserTimeline(username string, page int) ([]Message, error) {
	var msgs []Message
	err := c.getJSON(fmt.Sprintf("/msgs/%s?no=%d", username, c.limitFor(page)), &msgs)
	return msgs, err
}

func (c *Client) Post(username, text string) error {
	resp, err := c.postJSON("/msgs/"+username, map[string]string{"content": text})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return nil
}

func (c *Client) Follow(username, target string) error {
	return c.followChange(username, map[string]string{"follow": target})
}

func (c *Client) Unfollow(username, target string) error {
	return c.followChange(username, map[string]string{"unfollow": target})
}

func (c *Client) followChange(username string, body map[string]string) error {
	resp, err := c.postJSON("/fllws/"+username, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return nil
}

func (c *Client) IsFollowing(who, whom string) (bool, error) {
	var following bool
	err := c.getJSON(fmt.Sprintf("/isfollowing?whoUsername=%s&whomUsername=%s", who, whom), &following)
	return following, err
}

func (c *Client) Latest() (int, error) {
	var out struct {
		Latest int `json:"latest"`
	}
	err := c.getJSON("/latest", &out)
	return out.Latest, err
}

func (c *Client) limitFor(page int) int {
	if page < 1 {
		page = 1
	}
	return c.pageSize * page
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		ErrorMsg string `json:"error_msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.ErrorMsg != "" {
		return fmt.Errorf("%s", body.ErrorMsg)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
