// Package catalog scrapes course data from the UC public course catalog and
// the course search site.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrUnexpectedPage = errors.New("unexpected page layout")

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	SearchURL string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) fetch(ctx context.Context, rawURL string, query url.Values) (*goquery.Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	request.URL.RawQuery = query.Encode()
	request.Header.Set("Accept", "text/html")

	response, err := c.httpClient().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %v: unexpected status %v", request.URL, response.Status)
	}

	return goquery.NewDocumentFromReader(response.Body)
}

// text returns the unescaped text of a node with whitespace collapsed.
func text(node *html.Node) string {
	return strings.Join(strings.Fields(html.UnescapeString(goquery.NewDocumentFromNode(node).Text())), " ")
}
