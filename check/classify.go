package check

import (
	"errors"
	"strings"

	"github.com/Napsty/check-couchdb-replication/model"
)

// ErrorKind is the typed outcome of classifying one failed query.
type ErrorKind int

const (
	// KindNone means the response decoded cleanly and can be trusted.
	KindNone ErrorKind = iota
	// KindMissingCredentials is raised before any query when only one half
	// of a credential pair was supplied.
	KindMissingCredentials
	// KindAuthFailure is a credential rejection by the server.
	KindAuthFailure
	// KindNotAdmin means the credentials are valid but lack admin rights.
	KindNotAdmin
	// KindNotFound means the queried document or database does not exist.
	KindNotFound
	// KindConnectivity covers everything that prevented a usable response:
	// unreachable host, timeout, empty or unrecognizable body.
	KindConnectivity
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredentials:
		return "missing credentials"
	case KindAuthFailure:
		return "authentication failure"
	case KindNotAdmin:
		return "not a server admin"
	case KindNotFound:
		return "not found"
	default:
		return "connectivity failure"
	}
}

type signature struct {
	kind      ErrorKind
	fragments []string
}

// signatures is the fallback classification table for bodies that do not
// decode as CouchDB error documents (proxies, gateways, truncated
// responses). Fragments match case-insensitively in table order; order
// encodes precedence.
var signatures = []signature{
	{kind: KindAuthFailure, fragments: []string{"name or password is incorrect", "authentication required"}},
	{kind: KindNotAdmin, fragments: []string{"not a server admin"}},
	{kind: KindNotFound, fragments: []string{"not_found", "not found"}},
}

// Classify maps a failed query to its error kind. A nil error classifies as
// KindNone. Classification prefers the structured CouchDB error body and
// falls back to the signature table for anything else; failures that match
// nothing count as connectivity problems.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var qe *model.QueryError
	if !errors.As(err, &qe) {
		return KindConnectivity
	}
	if qe.Status == 0 || len(qe.Body) == 0 {
		// the exchange never completed, or completed without a body
		return KindConnectivity
	}
	if se, ok := model.ParseServerError(qe.Body); ok {
		if kind := classifyServerError(se); kind != KindNone {
			return kind
		}
	}
	if kind := classifyBody(qe.Body); kind != KindNone {
		return kind
	}
	return KindConnectivity
}

// classifyServerError inspects a decoded CouchDB error document. CouchDB
// reports both bad credentials and missing admin rights as "unauthorized";
// the reason text tells them apart.
func classifyServerError(se model.ServerError) ErrorKind {
	switch se.Err {
	case "unauthorized":
		if strings.Contains(strings.ToLower(se.Reason), "server admin") {
			return KindNotAdmin
		}
		return KindAuthFailure
	case "forbidden":
		return KindNotAdmin
	case "not_found":
		return KindNotFound
	}
	return KindNone
}

func classifyBody(body []byte) ErrorKind {
	lowered := strings.ToLower(string(body))
	for _, sig := range signatures {
		for _, fragment := range sig.fragments {
			if strings.Contains(lowered, fragment) {
				return sig.kind
			}
		}
	}
	return KindNone
}
