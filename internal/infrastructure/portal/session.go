package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/bonk1990/gydytojas/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrLoginFailed = errors.New("login failed")

// Session is the authenticated browser-style portal session. All remote
// calls go through it; the cookie state it carries is the only shared
// mutable resource and is serialized by the single-threaded call sequence.
type Session struct {
	client  *resty.Client
	log     *logrus.Logger
	baseURL string

	// Language is sent with slot search calls.
	Language string
}

func NewSession(cfg config.PortalConfig, log *logrus.Logger) *Session {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	// Any non-2xx portal response is a transport error.
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.IsError() {
			return fmt.Errorf("portal returned %s for %s", resp.Status(), resp.Request.URL)
		}
		return nil
	})

	return &Session{
		client:   client,
		log:      log,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		Language: cfg.Language,
	}
}

// Login performs the portal's browser login handshake: fetch the login
// page, submit credentials together with the anti-forgery token embedded in
// it, re-post the hidden hand-off form and verify we land on the main page.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.log.Infof("Logging in (username: %s)", username)

	resp, err := s.client.R().SetContext(ctx).Get("/Users/Account/LogOn")
	if err != nil {
		return fmt.Errorf("fetch login page: %w", err)
	}
	postURL := finalURL(resp)

	doc, err := document(resp)
	if err != nil {
		return err
	}

	// The anti-forgery token is a JSON object, html-escaped, inside a
	// dedicated element deep in the login page.
	var model struct {
		AntiForgery struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"antiForgery"`
	}
	if err := json.Unmarshal([]byte(html.UnescapeString(doc.Find("#modelJson").Text())), &model); err != nil {
		return fmt.Errorf("%w: no anti-forgery token on login page", ErrLoginFailed)
	}

	form := url.Values{
		"username":             {username},
		"password":             {password},
		model.AntiForgery.Name: {model.AntiForgery.Value},
	}
	resp, err = s.client.R().SetContext(ctx).SetFormDataFromValues(form).Post(postURL)
	if err != nil {
		return fmt.Errorf("submit credentials: %w", err)
	}

	// A successful credential POST redirects to the authorize endpoint with
	// a hidden form that a browser script would auto-submit. Do the same.
	doc, err = document(resp)
	if err != nil {
		return err
	}
	handOff := doc.Find("form").First()
	if !strings.Contains(finalURL(resp), "/connect/authorize") || handOff.Length() == 0 {
		return ErrLoginFailed
	}
	action, _ := handOff.Attr("action")
	resp, err = s.client.R().SetContext(ctx).SetFormDataFromValues(ExtractFormFields(handOff)).Post(action)
	if err != nil {
		return fmt.Errorf("submit hand-off form: %w", err)
	}

	// Opening the main page verifies the session: being redirected away
	// means we are back at the login screen.
	resp, err = s.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("open main page: %w", err)
	}
	if finalURL(resp) != s.baseURL+"/" {
		return ErrLoginFailed
	}

	s.log.Info("Logged in successfully.")
	return nil
}

// GetJSON issues a GET and decodes the JSON response into out.
func (s *Session) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := s.client.R().SetContext(ctx).SetQueryParamsFromValues(query).Get(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// PostJSON issues a POST with a JSON body and decodes the JSON response
// into out.
func (s *Session) PostJSON(ctx context.Context, path string, query url.Values, body, out any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// GetDocument issues a GET and parses the response as HTML.
func (s *Session) GetDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	resp, err := s.client.R().SetContext(ctx).SetQueryParamsFromValues(query).Get(path)
	if err != nil {
		return nil, err
	}
	return document(resp)
}

// PostForm issues a form-encoded POST and parses the response as HTML.
func (s *Session) PostForm(ctx context.Context, path string, form url.Values) (*goquery.Document, error) {
	resp, err := s.client.R().SetContext(ctx).SetFormDataFromValues(form).Post(path)
	if err != nil {
		return nil, err
	}
	return document(resp)
}

// ExtractFormFields collects the name/value pairs of every input element in
// the form so it can be resubmitted verbatim.
func ExtractFormFields(form *goquery.Selection) url.Values {
	fields := url.Values{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := input.Attr("value")
		fields.Set(name, value)
	})
	return fields
}

func decode(resp *resty.Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode portal response from %s: %w", resp.Request.URL, err)
	}
	return nil
}

func document(resp *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse portal page from %s: %w", resp.Request.URL, err)
	}
	return doc, nil
}

// finalURL is the URL the response was actually served from, after any
// redirects.
func finalURL(resp *resty.Response) string {
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		return raw.Request.URL.String()
	}
	return resp.Request.URL
}
