package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/entities"
)

// setupFantasyCatalog stores twelve fantasy authors named "Author 01" to
// "Author 12" and three of other genres.
func setupFantasyCatalog(t *testing.T) *testServer {
	t.Helper()
	s := setupTestServer(t, false)

	var catalog []entities.Author
	for i := 1; i <= 12; i++ {
		catalog = append(catalog, entities.Author{
			FirstName:   "Author",
			LastName:    fmt.Sprintf("%02d", i),
			DateOfBirth: time.Date(1950+i, time.June, 1, 0, 0, 0, 0, time.UTC),
			Genre:       "Fantasy",
		})
	}
	for _, genre := range []string{"Horror", "Thriller", "Romance"} {
		catalog = append(catalog, entities.Author{
			FirstName:   "Other",
			LastName:    genre,
			DateOfBirth: time.Date(1970, time.June, 1, 0, 0, 0, 0, time.UTC),
			Genre:       genre,
		})
	}
	require.NoError(t, authors.NewRepository(s.db.DB).CreateMany(context.Background(), catalog))
	return s
}

const fantasyPageTwo = "/api/authors?genre=Fantasy&sortKey=Name&pageNumber=2&pageSize=5&fields=id,name"

func TestEndToEnd_FilteredSortedShapedPage(t *testing.T) {
	s := setupFantasyCatalog(t)

	w := s.do(http.MethodGet, fantasyPageTwo, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	header := paginationHeader(t, w)
	assert.Equal(t, float64(12), header["totalCount"])
	assert.Equal(t, float64(5), header["pageSize"])
	assert.Equal(t, float64(2), header["currentPage"])
	assert.Equal(t, float64(3), header["totalPages"])
	assert.Equal(t,
		testBaseURL+"/api/authors?fields=id%2Cname&genre=Fantasy&pageNumber=1&pageSize=5&sortKey=Name",
		header["previousPageLink"])
	assert.Equal(t,
		testBaseURL+"/api/authors?fields=id%2Cname&genre=Fantasy&pageNumber=3&pageSize=5&sortKey=Name",
		header["nextPageLink"])

	body := decode[[]map[string]any](t, w)
	require.Len(t, body, 5)
	for i, a := range body {
		assert.ElementsMatch(t, []string{"id", "name"}, keys(a))
		assert.Equal(t, fmt.Sprintf("Author %02d", i+6), a["name"])
	}
}

func TestEndToEnd_FilteredSortedShapedPage_Hypermedia(t *testing.T) {
	s := setupFantasyCatalog(t)

	w := s.hyper(http.MethodGet, fantasyPageTwo, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	header := paginationHeader(t, w)
	assert.Equal(t, float64(3), header["totalPages"])
	assert.NotContains(t, header, "previousPageLink")

	body := decode[map[string]any](t, w)
	assert.Len(t, body["value"].([]any), 5)

	collectionLinks := body["links"].([]any)
	assert.Equal(t, []string{"self", "nextPage", "previousPage"}, linkRels(collectionLinks))
	assert.Equal(t,
		testBaseURL+"/api/authors?fields=id%2Cname&genre=Fantasy&pageNumber=2&pageSize=5&sortKey=Name",
		findLink(collectionLinks, "self")["href"])
	assert.Equal(t,
		testBaseURL+"/api/authors?fields=id%2Cname&genre=Fantasy&pageNumber=1&pageSize=5&sortKey=Name",
		findLink(collectionLinks, "previousPage")["href"])
}

func TestEndToEnd_FollowNextLinks(t *testing.T) {
	s := setupFantasyCatalog(t)

	seen := 0
	target := "/api/authors?genre=fantasy&pageSize=5"
	for pages := 0; target != "" && pages < 5; pages++ {
		w := s.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code)
		seen += len(decode[[]map[string]any](t, w))

		next, _ := paginationHeader(t, w)["nextPageLink"].(string)
		target = ""
		if next != "" {
			target = next[len(testBaseURL):]
		}
	}

	assert.Equal(t, 12, seen)
}
