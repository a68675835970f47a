package premiumize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// call is the per-invocation context of the pipeline.
type call struct {
	method    string
	path      string
	params    url.Values
	validator Validator
}

// pipeline is the single path every operation takes to the service. It holds
// no mutable state, so concurrent calls need no locking.
type pipeline struct {
	apiKey     Secret
	keyDisplay string
	transport  Transport
	logger     logrus.FieldLogger
	verbose    bool
}

func (p *pipeline) execute(ctx context.Context, c *call) (any, error) {
	if p.apiKey.IsZero() {
		return nil, ErrMissingAPIKey
	}

	query := p.inject(c.params)

	p.trace(func(l logrus.FieldLogger) {
		l.WithFields(logrus.Fields{
			"method": c.method,
			"path":   c.path,
			"apikey": p.keyDisplay,
		}).Info("premiumize request")
	})

	resp, err := p.transport.Do(ctx, &Request{Method: c.method, Path: c.path, Query: query})
	if err != nil {
		return nil, p.fail(c, classifyTransportFault(c, 0, err))
	}
	if resp == nil {
		return nil, p.fail(c, classifyTransportFault(c, 0, errors.New("transport returned no response")))
	}

	p.trace(func(l logrus.FieldLogger) {
		l.WithFields(logrus.Fields{
			"method": c.method,
			"path":   c.path,
			"status": resp.StatusCode,
			"bytes":  len(resp.Body),
		}).Info("premiumize response")
	})

	body, err := decodeBody(resp.Body)
	if err != nil {
		return nil, p.fail(c, classifyTransportFault(c, resp.StatusCode, err))
	}

	if failed, message := serviceFailure(resp.Body); failed {
		return nil, p.fail(c, classifyServiceFailure(c, resp.StatusCode, message, body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, p.fail(c, classifyTransportFault(c, resp.StatusCode, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)))
	}

	if c.validator == nil {
		return body, nil
	}

	value, err := c.validator.Validate(body)
	if err != nil {
		return nil, p.fail(c, classifyValidationFailure(c, issuesOf(err), body))
	}

	return value, nil
}

// inject merges the credential into the operation parameters. Parameters
// without values are dropped and an operation can never override the credential.
func (p *pipeline) inject(params url.Values) url.Values {
	query := make(url.Values, len(params)+1)
	for key, values := range params {
		if key == apiKeyParam || len(values) == 0 {
			continue
		}
		query[key] = append([]string(nil), values...)
	}
	query.Set(apiKeyParam, p.apiKey.Reveal())
	return query
}

func (p *pipeline) fail(c *call, err error) error {
	p.trace(func(l logrus.FieldLogger) {
		l.WithFields(logrus.Fields{
			"method": c.method,
			"path":   c.path,
			"kind":   Classify(err).String(),
		}).Infof("premiumize request failed: %v", err)
	})
	return err
}

// trace runs fn when verbose logging is on. Logging is best effort: a
// panicking hook or formatter must not fail the request.
func (p *pipeline) trace(fn func(logrus.FieldLogger)) {
	if !p.verbose || p.logger == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(p.logger)
}

// serviceFailure reports whether the body carries the service's error indicator.
func serviceFailure(raw []byte) (bool, string) {
	if gjson.GetBytes(raw, "status").String() != "error" {
		return false, ""
	}
	return true, gjson.GetBytes(raw, "message").String()
}

func decodeBody(raw []byte) (Body, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("empty response body")
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("response body is not valid JSON")
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return nil, errors.New("response body is not a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body Body
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return body, nil
}

func issuesOf(err error) []Issue {
	var list IssueList
	if errors.As(err, &list) {
		return list
	}
	return []Issue{{Reason: err.Error()}}
}
