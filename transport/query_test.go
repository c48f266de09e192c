package transport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackradar/console/internal/utils"
	"github.com/stackradar/console/transport"
)

func TestBuildQueryOmitsEmptyValues(t *testing.T) {
	var status *string
	got := transport.BuildQuery(
		transport.Param{Key: "page", Value: 1},
		transport.Param{Key: "q", Value: ""},
		transport.Param{Key: "status", Value: status},
	)
	require.Equal(t, "?page=1", got)
}

func TestBuildQueryAllOmittedYieldsEmptyString(t *testing.T) {
	got := transport.BuildQuery(
		transport.Param{Key: "q", Value: ""},
		transport.Param{Key: "status", Value: nil},
	)
	require.Equal(t, "", got)
}

func TestQueryEncodePreservesInsertionOrder(t *testing.T) {
	q := transport.Query{}.
		Set("page", 2).
		Set("page_size", 20).
		Set("sort_by", "name").
		Set("sort_order", "asc").
		Set("q", "redis")
	require.Equal(t, "page=2&page_size=20&sort_by=name&sort_order=asc&q=redis", q.Encode())
}

func TestQuerySetReplacesInPlace(t *testing.T) {
	q := transport.Query{}.
		Set("page", 1).
		Set("q", "go").
		Set("page", 3)
	require.Equal(t, "page=3&q=go", q.Encode())
}

func TestQueryEncodeStringifiesValues(t *testing.T) {
	q := transport.Query{}.
		Set("category_id", int64(7)).
		Set("active", true).
		Set("team_id", utils.Ptr(int64(12)))
	require.Equal(t, "category_id=7&active=true&team_id=12", q.Encode())
}

func TestQueryEncodeEscapesValues(t *testing.T) {
	q := transport.Query{}.Set("q", "data platform")
	require.Equal(t, "q=data+platform", q.Encode())
}
