// Package couchdb provides a read-only client for the CouchDB endpoints the
// replication probe consumes: the active-tasks feed, the replication
// scheduler and the _replicator database.
package couchdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Napsty/check-couchdb-replication/httpclient"
	"github.com/Napsty/check-couchdb-replication/model"
)

// Options describe how to reach one cluster node. Credentials are passed
// through to basic auth verbatim; leaving both empty queries anonymously.
type Options struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
	Timeout  time.Duration
	Insecure bool // skip TLS certificate verification
	Logger   *slog.Logger
}

// BaseURL composes the connection URL from host, port and scheme.
func (o Options) BaseURL() string {
	scheme := "http"
	if o.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, o.Host, o.Port)
}

type Client struct {
	http httpclient.HTTPClient
}

func NewClient(options Options) *Client {
	return &Client{
		http: httpclient.NewHTTPClient(httpclient.Option{
			BaseURL:  options.BaseURL(),
			Username: options.Username,
			Password: options.Password,
			Timeout:  options.Timeout,
			Insecure: options.Insecure,
			Logger:   options.Logger,
		}),
	}
}

// ActiveTasks retrieves the currently running cluster tasks. The feed
// contains every task type; callers filter for replication tasks.
func (c *Client) ActiveTasks(ctx context.Context) ([]model.ActiveTask, error) {
	var tasks []model.ActiveTask
	if err := c.http.Get(ctx, "/_active_tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SchedulerDoc retrieves the scheduler record for one replication document.
func (c *Client) SchedulerDoc(ctx context.Context, id string) (model.SchedulerDoc, error) {
	var doc model.SchedulerDoc
	if err := c.http.Get(ctx, "/_scheduler/docs/_replicator/"+url.PathEscape(id), &doc); err != nil {
		return model.SchedulerDoc{}, err
	}
	return doc, nil
}

// SchedulerDocs retrieves the scheduler records of all replication
// documents in one query.
func (c *Client) SchedulerDocs(ctx context.Context) ([]model.SchedulerDoc, error) {
	var resp model.SchedulerDocs
	if err := c.http.Get(ctx, "/_scheduler/docs/_replicator", &resp); err != nil {
		return nil, err
	}
	return resp.Docs, nil
}

// ReplicationDoc retrieves the replication document itself, which holds the
// continuous flag the scheduler record does not expose.
func (c *Client) ReplicationDoc(ctx context.Context, id string) (model.ReplicationDocument, error) {
	var doc model.ReplicationDocument
	if err := c.http.Get(ctx, "/_replicator/"+url.PathEscape(id), &doc); err != nil {
		return model.ReplicationDocument{}, err
	}
	return doc, nil
}
