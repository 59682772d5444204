package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBaseURL indicates a base URL that is not an absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// urlAttrs names the attribute resolved for each rewritten element.
var urlAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativeURLs resolves relative img[src] and a[href] targets of an
// HTML fragment against baseURL, so README assets load from the repository.
// Anchors, rooted paths and URLs with a scheme or host are kept. An empty
// baseURL returns fragment unchanged.
func RewriteRelativeURLs(fragment, baseURL string) (string, error) {
	if baseURL == "" {
		return fragment, nil
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, top := range nodes {
		resolveAttrs(top, base)
		for n := range top.Descendants() {
			resolveAttrs(n, base)
		}
		if err := html.Render(&buf, top); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseBaseURL requires an http(s) URL with a host. A trailing slash is
// added so the last path segment is kept when resolving.
func parseBaseURL(baseURL string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func resolveAttrs(n *html.Node, base *url.URL) {
	key, ok := urlAttrs[n.DataAtom]
	if !ok || n.Type != html.ElementNode {
		return
	}
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if ref, ok := relativeRef(attr.Val); ok {
			n.Attr[i].Val = base.ResolveReference(ref).String()
		}
	}
}

// relativeRef parses target when it is a path relative to the document.
func relativeRef(target string) (*url.URL, bool) {
	if target == "" || target[0] == '#' || target[0] == '/' {
		return nil, false
	}
	ref, err := url.Parse(target)
	if err != nil || ref.Scheme != "" || ref.Host != "" {
		return nil, false
	}
	return ref, true
}
