package catalog

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/osuc/buscaramos/db"
)

// ScrapeSemesters lists the semesters offered by the search site, newest
// first as the site orders them.
func (c *Client) ScrapeSemesters(ctx context.Context) ([]db.Semester, error) {
	document, err := c.fetch(ctx, c.SearchURL, url.Values{})
	if err != nil {
		return nil, err
	}

	var semesters []db.Semester
	for _, root := range document.Find("select#cxml_semestre option").Nodes {
		option := goquery.NewDocumentFromNode(root)

		code, exists := option.Attr("value")
		if !exists || code == "" {
			continue
		}

		semesters = append(semesters, db.Semester{Code: code, Name: text(root)})
	}

	if len(semesters) == 0 {
		return nil, ErrUnexpectedPage
	}

	return semesters, nil
}
