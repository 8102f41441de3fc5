package catalog

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
	"github.com/osuc/buscaramos/requisites"
)

// Column positions in the search results table.
const (
	sigleColumn   = 1
	nameColumn    = 9
	creditsColumn = 12
)

// ScrapeCourses lists the courses offered in a semester whose sigle starts
// with prefix. Sections of the same course are merged.
func (c *Client) ScrapeCourses(ctx context.Context, semester string, prefix string) ([]db.Course, error) {
	query := url.Values{}
	query.Set("cxml_semestre", semester)
	query.Set("cxml_sigla", prefix)

	document, err := c.fetch(ctx, c.SearchURL, query)
	if err != nil {
		return nil, err
	}

	return parseCourses(document, semester), nil
}

func parseCourses(document *goquery.Document, semester string) []db.Course {
	var courses []db.Course
	seen := make(map[string]bool)
	school := ""

	for _, root := range document.Find("tr").Nodes {
		row := goquery.NewDocumentFromNode(root)

		cells := row.ChildrenFiltered("td")

		// School names head each block of results in a single wide cell.
		if cells.Length() == 1 {
			if _, wide := cells.Attr("colspan"); wide {
				school = text(cells.Nodes[0])
			}
			continue
		}

		if !row.Is("tr.resultadosRowPar, tr.resultadosRowImpar") {
			continue
		}

		if cells.Length() <= creditsColumn {
			logger.Debug().Int("cells", cells.Length()).Msg("Skipping short results row")
			continue
		}

		sigle := text(cells.Nodes[sigleColumn])
		if !requisites.ValidSigle(sigle) || seen[sigle] {
			continue
		}
		seen[sigle] = true

		credits, err := strconv.Atoi(text(cells.Nodes[creditsColumn]))
		if err != nil {
			logger.Debug().Str("sigle", sigle).Msg("Unable to determine course credits")
		}

		courses = append(courses, db.Course{
			Sigle:        sigle,
			Name:         text(cells.Nodes[nameColumn]),
			Credits:      credits,
			School:       school,
			LastSemester: semester,
		})
	}

	return courses
}

// ScrapeAllCourses scrapes every prefix concurrently. Prefixes that fail are
// logged and skipped. The result is sorted by sigle.
func (c *Client) ScrapeAllCourses(ctx context.Context, semester string, prefixes []string) []db.Course {
	var courses []db.Course
	var coursesMutex sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for _, prefix := range prefixes {
		wg.Add(1)

		go func(prefix string) {
			defer wg.Done()

			scraped, err := c.ScrapeCourses(ctx, semester, prefix)
			if err != nil {
				logger.Warn().Err(err).Str("prefix", prefix).Msg("Unable to scrape courses")
				return
			}

			coursesMutex.Lock()
			defer coursesMutex.Unlock()
			for _, course := range scraped {
				if !seen[course.Sigle] {
					seen[course.Sigle] = true
					courses = append(courses, course)
				}
			}
		}(prefix)
	}
	wg.Wait()

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].Sigle < courses[j].Sigle
	})

	return courses
}
