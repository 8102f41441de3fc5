package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
	"github.com/osuc/buscaramos/requisites"
)

const (
	prerequisitesLabel = "prerrequisitos"
	connectorLabel     = "relación entre prerrequisitos y restricciones"
	restrictionsLabel  = "restricciones"
	equivalencesLabel  = "equivalencias"
)

const maxConcurrentRequisites = 8

// ScrapeRequisites reads the raw requisite texts of one course.
func (c *Client) ScrapeRequisites(ctx context.Context, sigle string) (db.CourseRequisites, error) {
	query := url.Values{}
	query.Set("tmpl", "component")
	query.Set("option", "com_catalogo")
	query.Set("view", "requisitos")
	query.Set("sigla", sigle)

	document, err := c.fetch(ctx, c.BaseURL, query)
	if err != nil {
		return db.CourseRequisites{}, err
	}

	return parseRequisites(document, sigle)
}

func parseRequisites(document *goquery.Document, sigle string) (db.CourseRequisites, error) {
	result := db.CourseRequisites{Sigle: sigle}
	found := false

	for _, root := range document.Find("table tr").Nodes {
		cells := goquery.NewDocumentFromNode(root).ChildrenFiltered("td").Nodes
		if len(cells) < 2 {
			continue
		}

		label := strings.ToLower(strings.TrimSuffix(text(cells[0]), ":"))
		value := text(cells[1])

		switch label {
		case prerequisitesLabel:
			result.Prerequisites = value
		case connectorLabel:
			result.Connector = value
		case restrictionsLabel:
			result.Restrictions = value
		case equivalencesLabel:
			result.Equivalences = value
		default:
			continue
		}
		found = true
	}

	if !found {
		return db.CourseRequisites{}, fmt.Errorf("requisites of %v: %w", sigle, ErrUnexpectedPage)
	}

	return normalizeRequisites(result), nil
}

// normalizeRequisites stores absent values as empty strings.
func normalizeRequisites(r db.CourseRequisites) db.CourseRequisites {
	for _, field := range []*string{&r.Prerequisites, &r.Restrictions, &r.Connector, &r.Equivalences} {
		if requisites.IsAbsent(*field) {
			*field = ""
		}
	}
	return r
}

// ScrapeAllRequisites scrapes the requisites of every sigle. Courses that
// fail are logged and left out.
func (c *Client) ScrapeAllRequisites(ctx context.Context, sigles []string) []db.CourseRequisites {
	var all []db.CourseRequisites
	var allMutex sync.Mutex

	slots := make(chan struct{}, maxConcurrentRequisites)
	var wg sync.WaitGroup
	for _, sigle := range sigles {
		wg.Add(1)

		go func(sigle string) {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-slots }()

			r, err := c.ScrapeRequisites(ctx, sigle)
			if err != nil {
				logger.Warn().Err(err).Str("sigle", sigle).Msg("Unable to scrape course requisites")
				return
			}

			allMutex.Lock()
			all = append(all, r)
			allMutex.Unlock()
		}(sigle)
	}
	wg.Wait()

	return all
}
